package server

import "strings"

// ParsePath maps a request path to a channel and a file name.
//
// In multi-channel mode the first segment names the channel. An empty
// channel means the default log directory. ok is false when the path cannot
// name a file: it has further separators or walks out of the directory.
func ParsePath(p string, multi bool) (channel, name string, ok bool) {
	p = strings.TrimPrefix(p, "/")
	if multi {
		if i := strings.IndexByte(p, '/'); i >= 0 {
			channel, p = p[:i], p[i+1:]
			if channel == "." || channel == ".." || strings.Contains(channel, `\`) {
				return "", "", false
			}
		}
	}
	if strings.ContainsAny(p, `/\`) || p == "." || p == ".." {
		return channel, "", false
	}
	if p == "" {
		p = "index.html"
	}
	return channel, p, true
}
