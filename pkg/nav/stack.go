// Package nav maintains the breadcrumb trail of a folder browsing view.
package nav

import (
	"fmt"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

// Stack is the ordered sequence of folders from the root of the view
// down to the currently displayed folder. It is rebuilt fresh each time
// a browsing view opens and discarded when the view closes; it is never
// empty while in use.
type Stack struct {
	frames []*models.Folder
}

// New opens a navigation stack at the given root.
func New(root *models.Folder) *Stack {
	return &Stack{frames: []*models.Folder{root}}
}

// Current returns the folder being displayed.
func (s *Stack) Current() *models.Folder {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of folders on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Trail returns the breadcrumb from root to current. The returned
// slice is a copy.
func (s *Stack) Trail() []*models.Folder {
	trail := make([]*models.Folder, len(s.frames))
	copy(trail, s.frames)
	return trail
}

// Descend pushes child and makes it current. Child must be a direct
// sub-folder of the current folder.
func (s *Stack) Descend(child *models.Folder) error {
	if child == nil {
		return fmt.Errorf("descend: nil folder")
	}
	current := s.Current()
	for _, sub := range current.SubFolders {
		if sub == child || sub.ID == child.ID {
			s.frames = append(s.frames, child)
			return nil
		}
	}
	return fmt.Errorf("descend: %q is not a sub-folder of %q", child.Name, current.Name)
}

// AscendTo truncates the trail so that the folder at index i becomes
// current (breadcrumb tap).
func (s *Stack) AscendTo(i int) error {
	if i < 0 || i >= len(s.frames) {
		return fmt.Errorf("ascend: index %d out of range [0,%d)", i, len(s.frames))
	}
	s.frames = s.frames[:i+1]
	return nil
}

// Back moves to the parent folder. It returns false when already at
// the root, meaning the caller should exit the browsing view; the
// stack is left untouched in that case.
func (s *Stack) Back() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}
