package plog

/*
Logger client is a tag-bound handle for one part of a program (module,
subsystem, goroutine family). All its entries carry the client's tag, so
call sites only pass the message. Clients are values: creating one is free
and they are safe for concurrent use as long as their Logger is.
*/

// Client logs through its Logger with a fixed tag.
type Client struct {
	logger   *Logger
	tag      string
	curLevel Level // level used by Write
}

// Client returns a handle logging with tag (the config's default tag when
// empty).
func (l *Logger) Client(tag string) *Client {
	l.snapshot()
	return &Client{logger: l, tag: tag, curLevel: LVL_INFO}
}

func (lc *Client) Tag() string { return lc.tag }

func (lc *Client) Logger() *Logger { return lc.logger }

func (lc *Client) Log(level Level, msg string) { lc.logger.Log(level, lc.tag, msg) }

func (lc *Client) Logf(level Level, format string, args ...any) {
	lc.logger.Logf(level, lc.tag, format, args...)
}

func (lc *Client) Verbose(msg string) { lc.logger.Log(LVL_VERBOSE, lc.tag, msg) }
func (lc *Client) Debug(msg string)   { lc.logger.Log(LVL_DEBUG, lc.tag, msg) }
func (lc *Client) Info(msg string)    { lc.logger.Log(LVL_INFO, lc.tag, msg) }
func (lc *Client) Warn(msg string)    { lc.logger.Log(LVL_WARN, lc.tag, msg) }
func (lc *Client) Error(msg string)   { lc.logger.Log(LVL_ERROR, lc.tag, msg) }

func (lc *Client) Verbosef(format string, args ...any) {
	lc.logger.Logf(LVL_VERBOSE, lc.tag, format, args...)
}

func (lc *Client) Debugf(format string, args ...any) {
	lc.logger.Logf(LVL_DEBUG, lc.tag, format, args...)
}

func (lc *Client) Infof(format string, args ...any) {
	lc.logger.Logf(LVL_INFO, lc.tag, format, args...)
}

func (lc *Client) Warnf(format string, args ...any) {
	lc.logger.Logf(LVL_WARN, lc.tag, format, args...)
}

func (lc *Client) Errorf(format string, args ...any) {
	lc.logger.Logf(LVL_ERROR, lc.tag, format, args...)
}

// Err logs err (with its causal chain) at ERROR level, msg first if not
// empty.
func (lc *Client) Err(msg string, err error) { lc.logger.LogErr(LVL_ERROR, lc.tag, msg, err) }

func (lc *Client) Object(level Level, obj any) { lc.logger.LogObject(level, lc.tag, obj) }

func (lc *Client) Array(level Level, arr any) { lc.logger.LogArray(level, lc.tag, arr) }

func (lc *Client) JSON(s string) { lc.logger.JSON(lc.tag, s) }

func (lc *Client) XML(s string) { lc.logger.XML(lc.tag, s) }
