package golin

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Frame is one captured or transmitted LIN frame. ID always carries the
// identifier the bus answered with, parity stripped, even when the
// checksum did not verify; callers deciding to trust the data anyway do
// so at their own risk.
type Frame struct {
	ID            uint8 // 6-bit frame identifier
	PID           uint8 // protected identifier as seen on the wire
	Data          []byte
	Checksum      byte
	ChecksumValid bool
}

func NewFrame(id uint8, data []byte) *Frame {
	return &Frame{
		ID:   id & MaxFrameID,
		PID:  ProtectedID(id),
		Data: data,
	}
}

func (f *Frame) Length() int {
	return len(f.Data)
}

var (
	green  = color.New(color.FgGreen).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
	yellow = color.New(color.FgHiBlue).SprintfFunc()
)

func (f *Frame) String() string {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("0x%02X (0x%02X)", f.ID, f.PID) + " || ")
	out.WriteString(fmt.Sprintf("%d", len(f.Data)) + " || ")

	var hexView strings.Builder
	for i, b := range f.Data {
		hexView.WriteString(fmt.Sprintf("%02X", b))
		if i != len(f.Data)-1 {
			hexView.WriteString(" ")
		}
	}
	out.WriteString(fmt.Sprintf("%-23s", hexView.String()))

	out.WriteString(" || ")
	out.WriteString(f.checksumView())
	return out.String()
}

func (f *Frame) ColorString() string {
	var out strings.Builder

	out.WriteString(green("0x%02X (0x%02X)", f.ID, f.PID) + " || ")
	out.WriteString(fmt.Sprintf("%d", len(f.Data)) + " || ")

	var hexView strings.Builder
	for i, b := range f.Data {
		hexView.WriteString(fmt.Sprintf("%02X", b))
		if i != len(f.Data)-1 {
			hexView.WriteString(" ")
		}
	}
	out.WriteString(yellow(fmt.Sprintf("%-23s", hexView.String())))

	out.WriteString(" || ")
	if len(f.Data) > 0 && !f.ChecksumValid {
		out.WriteString(red(f.checksumView()))
	} else {
		out.WriteString(f.checksumView())
	}
	return out.String()
}

func (f *Frame) checksumView() string {
	if len(f.Data) == 0 {
		return "no response"
	}
	if f.ChecksumValid {
		return fmt.Sprintf("|%02X", f.Checksum)
	}
	return fmt.Sprintf("|%02X checksum failed", f.Checksum)
}
