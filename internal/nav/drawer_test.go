package nav

import (
	"fmt"
	"testing"
)

func TestDrawer(t *testing.T) {
	type testCase struct {
		Actions       []func(d *Drawer)
		ExpectedState DrawerState
	}

	testCases := []testCase{
		{
			Actions:       nil,
			ExpectedState: DrawerClosed,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Open},
			ExpectedState: DrawerOpen,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Open, (*Drawer).Close},
			ExpectedState: DrawerClosed,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Open, (*Drawer).Dismiss},
			ExpectedState: DrawerClosed,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Open, (*Drawer).Activate},
			ExpectedState: DrawerClosed,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Activate},
			ExpectedState: DrawerClosed,
		},
		{
			Actions:       []func(d *Drawer){(*Drawer).Open, (*Drawer).Open},
			ExpectedState: DrawerOpen,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			drawer := NewDrawer()

			for _, action := range tc.Actions {
				action(drawer)
			}

			if e, g := tc.ExpectedState, drawer.State(); e != g {
				t.Errorf("drawer.State(): expected '%v', got '%v'", e, g)
			}
		})
	}
}
