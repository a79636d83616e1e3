// Package diap implements the responder side of DIAP, a small ASCII line
// protocol used to query rolling windows of sensor statistics over a serial link.
//
// # Frame Format
//
// Requests and responses share one frame shape:
//
//	DIAP000<cmd1;cmd2;...;cmdN>XXXX\n
//
// The payload between '<' and '>' is protected by a CRC-16 computed with a zero
// seed over exactly the payload bytes. Requests may carry one or more hex digits
// of checksum; responses always carry four upper-case hex digits.
//
// # Validation
//
// An inbound frame is checked in a fixed order and the first failing check
// decides the answer:
//
//  1. header           BAD MSG HEADER
//  2. line terminator  NO LINE FEED
//  3. '<'              NO OPEN DELIMITER
//  4. '>' after '<'    NO CLOSE DELIMITER
//  5. payload length   COMMAND TOO LARGE
//  6. checksum digits  INVALID CRC CHAR
//  7. checksum value   REQUEST CORRUPT
//
// A rejected frame is answered with its label as the payload and never touches
// the statistic store.
//
// # Dispatch
//
// Each command token resolves through a CommandTable to a channel, a field
// (low, avg or high) and a zero-pad width. The engine peeks the oldest window of
// the channel and renders "token=value". Unknown tokens are answered inline with
// "token=UNSUPPORTED FEATURE". After every token has been answered, the oldest
// window of every channel is dropped at once, so all channels stay in step.
//
// Responses are bounded by a fixed buffer. A request whose answer would not fit
// is answered with RESPONSE TOO LARGE; an answer that ends up empty is reported
// as UNDEFINED ERROR.
package diap
