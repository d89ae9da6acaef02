package plog

import "bytes"

/*********************************************************************************
io.Writer interface implementation

A Client implements io.Writer so it can be handed to anything expecting one
(fmt.Fprintf, log.New, http.Server.ErrorLog...). The semantics are:
 - Lvl(level) returns a copy of the client writing at that level.
 - Write(p) logs p (one trailing newline trimmed) and returns len(p).

This allows patterns like:
  fmt.Fprintf(client.Lvl(LVL_WARN), "disk low: %d%%", percent)
*/

// Lvl returns a copy of the client whose Write logs at level. The receiver
// is not changed.
func (lc *Client) Lvl(level Level) *Client {
	cp := *lc
	cp.curLevel = level
	return &cp
}

// Write implements io.Writer. Empty payloads are not logged.
func (lc *Client) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	lc.logger.Log(lc.curLevel, lc.tag, string(bytes.TrimSuffix(p, []byte{'\n'})))
	return len(p), nil
}
