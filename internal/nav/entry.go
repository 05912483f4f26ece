package nav

import "strings"

const (
	LabelHome     = "Home"
	LabelCPanel   = "CPanel"
	LabelWishlist = "Wishlist"

	TargetHome     = "/"
	TargetCPanel   = "cpanel"
	TargetWishlist = "wishlist"
)

type Entry struct {
	Label   string
	Target  string
	Visible bool
}

// Path returns the absolute path of the entry target.
func (e Entry) Path() string {
	if strings.HasPrefix(e.Target, "/") {
		return e.Target
	}

	return "/" + e.Target
}

// ComputeEntries returns the ordered navigation entries for the given
// authentication state.
func ComputeEntries(auth *AuthState) []Entry {
	if auth == nil {
		return []Entry{
			{Label: LabelHome, Target: TargetHome, Visible: true},
		}
	}

	entries := []Entry{
		{Label: LabelHome, Target: TargetHome, Visible: true},
		{Label: LabelCPanel, Target: TargetCPanel, Visible: true},
	}

	if auth.Role == RoleUser {
		entries = append(entries, Entry{Label: LabelWishlist, Target: TargetWishlist, Visible: true})
	}

	return entries
}

// Labels is a convenience accessor used in logs and tests.
func Labels(entries []Entry) []string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label)
	}

	return labels
}
