package site

// Scroller moves a view so that the given offset is at the top.
type Scroller interface {
	ScrollTo(offset int)
}

// Shell is the page chrome state: the mobile menu flag and the section
// anchors it can jump to. It is driven from a single UI event loop.
type Shell struct {
	menuOpen bool
	anchors  map[string]int
	scroller Scroller
	nav      []NavItem
}

func NewShell(nav []NavItem, scroller Scroller) *Shell {
	return &Shell{
		anchors:  map[string]int{},
		scroller: scroller,
		nav:      nav,
	}
}

// SetAnchors replaces the section offsets, typically after a re-layout.
func (s *Shell) SetAnchors(anchors map[string]int) {
	s.anchors = make(map[string]int, len(anchors))
	for id, off := range anchors {
		s.anchors[id] = off
	}
}

func (s *Shell) NavItems() []NavItem { return s.nav }

func (s *Shell) MenuOpen() bool { return s.menuOpen }

func (s *Shell) ToggleMobileMenu() {
	s.menuOpen = !s.menuOpen
}

// ScrollToSection scrolls to the section with the given id. Unknown ids are
// ignored. The menu is closed either way. It reports whether a scroll happened.
func (s *Shell) ScrollToSection(id string) bool {
	defer func() { s.menuOpen = false }()

	off, ok := s.anchors[id]
	if !ok || s.scroller == nil {
		return false
	}
	s.scroller.ScrollTo(off)
	return true
}
