package ui

import (
	"sync"
	"testing"
)

func TestGetViewContext_Singleton(t *testing.T) {
	if GetViewContext() != GetViewContext() {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantWidth     int
		wantHeight    int
		wantSidebar   int
	}{
		{"regular terminal", 120, 40, 120, 40, 30},
		{"narrow terminal keeps sidebar minimum", 60, 20, 60, 20, MinSidebarWidth},
		{"tiny terminal clamps", 10, 3, MinTerminalWidth, MinTerminalHeight, MinSidebarWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := GetViewContext()
			v.UpdateTerminalSize(tt.width, tt.height)

			if v.TerminalWidth != tt.wantWidth || v.TerminalHeight != tt.wantHeight {
				t.Errorf("terminal = %dx%d, want %dx%d", v.TerminalWidth, v.TerminalHeight, tt.wantWidth, tt.wantHeight)
			}
			if want := tt.wantHeight - HeaderHeight - FooterHeight; v.ContentHeight != want {
				t.Errorf("ContentHeight = %d, want %d", v.ContentHeight, want)
			}
			if v.SidebarWidth != tt.wantSidebar {
				t.Errorf("SidebarWidth = %d, want %d", v.SidebarWidth, tt.wantSidebar)
			}
			if v.SidebarWidth+v.ChatWidth != tt.wantWidth {
				t.Errorf("sidebar + chat = %d, want %d", v.SidebarWidth+v.ChatWidth, tt.wantWidth)
			}
		})
	}
}

func TestViewContext_SetSidebarHidden(t *testing.T) {
	v := GetViewContext()
	t.Cleanup(func() { v.SetSidebarHidden(false) })
	v.UpdateTerminalSize(120, 40)

	v.SetSidebarHidden(true)
	if v.SidebarWidth != 0 || v.ChatWidth != 120 {
		t.Errorf("hidden: sidebar=%d chat=%d, want 0 and 120", v.SidebarWidth, v.ChatWidth)
	}

	// A resize keeps the sidebar hidden
	v.UpdateTerminalSize(100, 30)
	if v.SidebarWidth != 0 || v.ChatWidth != 100 {
		t.Errorf("hidden after resize: sidebar=%d chat=%d, want 0 and 100", v.SidebarWidth, v.ChatWidth)
	}

	v.SetSidebarHidden(false)
	if v.SidebarWidth != 25 || v.ChatWidth != 75 {
		t.Errorf("shown: sidebar=%d chat=%d, want 25 and 75", v.SidebarWidth, v.ChatWidth)
	}
}

func TestViewContext_InnerDimensions(t *testing.T) {
	v := GetViewContext()
	for _, size := range []int{BorderSize, 10, 40, 80} {
		if got := v.InnerWidth(size); got != size-BorderSize {
			t.Errorf("InnerWidth(%d) = %d, want %d", size, got, size-BorderSize)
		}
		if got := v.InnerHeight(size); got != size-BorderSize {
			t.Errorf("InnerHeight(%d) = %d, want %d", size, got, size-BorderSize)
		}
	}
}

func TestViewContext_ConcurrentResize(t *testing.T) {
	v := GetViewContext()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v.UpdateTerminalSize(80+n, 24+n)
		}(i)
	}
	wg.Wait()
	v.UpdateTerminalSize(120, 40)
}
