package scanner

// Announcements.
const (
	MsgGreeting        = "Welcome to Currency Note Scanner. Let me help you identify your currency notes."
	MsgCaptureOptions  = "Choose how you would like to scan the note"
	MsgOpeningCamera   = "Opening camera. Please position the note within the frame."
	MsgCameraFailed    = "Unable to access camera. Please check permissions and try again."
	MsgSelectImage     = "Please select an image from your gallery"
	MsgGoingBack       = "Going back"
	MsgCapturing       = "Capturing image"
	MsgCameraCancelled = "Camera cancelled"
	MsgInvalidFile     = "Please select a valid image file"
	MsgImageSelected   = "Image selected. Processing..."
	MsgAnalyzing       = "Please wait while I analyze the note"
	MsgBlurry          = "Image unclear. Please retake the photo with better focus."
	MsgLowConfidence   = "I'm not sure about this note. Please try again with better lighting and focus."
	MsgError           = "Something went wrong. Please try again."
	MsgNewScan         = "Starting new scan"
)

// Inline warnings.
const (
	WarnCameraDenied = "Camera access denied. Please allow camera permissions to use this feature."
	WarnInvalidFile  = "Please select a valid image file"
)
