package scanner

// Screen is one of the mutually exclusive views of a scan session.
type Screen int

const (
	Welcome Screen = iota
	CaptureOptions
	Camera
	Processing
	Results
	screenCount
)

var screenNames = [screenCount]string{
	Welcome:        "welcome",
	CaptureOptions: "capture_options",
	Camera:         "camera",
	Processing:     "processing",
	Results:        "results",
}

var screenTitles = [screenCount]string{
	Welcome:        "Welcome screen",
	CaptureOptions: "Capture options screen",
	Camera:         "Camera screen",
	Processing:     "Processing your image",
	Results:        "Results screen",
}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return "unknown"
	}
	return screenNames[s]
}

// Title is the text mirrored to the live region when the screen activates.
func (s Screen) Title() string {
	if s < 0 || s >= screenCount {
		return ""
	}
	return screenTitles[s]
}

// Screens tracks the active flag of every screen. Activating one screen
// deactivates all others.
type Screens struct {
	active [screenCount]bool
}

// Activate marks s active and every other screen inactive.
func (s *Screens) Activate(screen Screen) {
	for i := range s.active {
		s.active[i] = Screen(i) == screen
	}
}

// IsActive reports whether screen is the active screen.
func (s *Screens) IsActive(screen Screen) bool {
	if screen < 0 || screen >= screenCount {
		return false
	}
	return s.active[screen]
}

// Active returns the active screen.
func (s *Screens) Active() Screen {
	for i, on := range s.active {
		if on {
			return Screen(i)
		}
	}
	return Welcome
}

// Count returns the number of active screens.
func (s *Screens) Count() int {
	n := 0
	for _, on := range s.active {
		if on {
			n++
		}
	}
	return n
}
