package ui

const Brand = "SysCommerce"

type NavbarLink struct {
	Label  string
	URL    string
	Active bool
}

type NavbarTemplateData struct {
	Brand           string
	Username        string
	IsAuthenticated bool
	// DarkMode is true when the dark theme is active. The toggle then offers
	// the light mode.
	DarkMode    bool
	InlineLinks []NavbarLink
	DrawerLinks []NavbarLink
	DrawerOpen  bool
	LoggingOut  bool
}

type PageTemplateData struct {
	HeadTemplateData
	NavbarTemplateData
}
