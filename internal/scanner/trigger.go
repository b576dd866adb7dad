package scanner

import (
	"io"
)

// Trigger is a user action or platform event delivered to the controller.
type Trigger int

const (
	StartScan Trigger = iota
	ChooseCamera
	ChooseUpload
	SelectFile
	Back
	Capture
	CancelCamera
	ScanAgain
	Hide
	Show
)

var triggerNames = map[Trigger]string{
	StartScan:    "start_scan",
	ChooseCamera: "choose_camera",
	ChooseUpload: "choose_upload",
	SelectFile:   "select_file",
	Back:         "back",
	Capture:      "capture",
	CancelCamera: "cancel_camera",
	ScanAgain:    "scan_again",
	Hide:         "hide",
	Show:         "show",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "unknown"
}

// File is a user-selected file. Open is called at most once.
type File struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Event is a trigger with its payload. File is set only for SelectFile.
type Event struct {
	Trigger Trigger
	File    *File
}
