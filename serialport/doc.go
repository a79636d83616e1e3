// Package serialport serves a diap.Engine over a serial line.
//
// A Responder reads request frames from a Port, answers each one through the
// engine and writes the response frame back before reading the next request.
// Store reloads requested with Responder.Reload are installed by the same
// loop, between two requests, so the engine never observes a reload while it
// dispatches.
//
// Frames are delimited by the first '\n' or '\r'. A run of bytes that fills the
// frame buffer without a terminator is handed to the engine as-is and answered
// with NO LINE FEED. Empty lines, such as the '\n' of a "\r\n" pair, are skipped.
package serialport
