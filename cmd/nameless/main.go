// Command nameless queries and manages a NamelessMC website through its API.
//
// Usage:
//
//	nameless --config nameless.yaml info
//	NAMELESS_WEBSITE_URL=https://example.com/api/v2/<key> nameless user Notch jeb_
package main

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	setVersion(version, buildTime)
	execute()
}
