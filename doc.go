// Package inicfg provides a typed definition layer over INI configuration
// files. A schema declares sections and typed options up front; reading a
// file converts every raw string into a Go value through that schema, and
// saving serializes the values back, preserving unknown content.
//
// Features:
//   - Typed options: strings, ints, floats, decimals, bools, lists,
//     ranges, dates, timestamps, JSON objects, gob blobs
//   - Custom option kinds through the Converter interface
//   - Derived options computed from other options on every access
//   - Dynamic expansion: option collections and section collections that
//     adapt the schema to the keys and sections actually present
//   - Empty-token handling ("", "none", "null" and per-kind variants)
//   - Type-checked assignment and a read-only policy
//   - Struct scanning via mapstructure
//   - Atomic saves through a temp file and rename
//
// Quick Start:
//
//	schema := func(c *inicfg.ConfigFile) error {
//	    _, err := inicfg.NewSection(c, "Server",
//	        inicfg.Str("Host"),
//	        inicfg.Int("Port"),
//	        inicfg.Bool("TLS", inicfg.Optional()),
//	    )
//	    return err
//	}
//
//	cfg, err := inicfg.Open("app.ini", schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server, _ := cfg.Section("Server")
//	host, _ := server.String("Host")
//	port, _ := server.Int64("Port")
//
//	cfg.Set("Server", "Port", 9090)
//	cfg.Save()
//
// Reading is a full rebuild: every Read discards the section tree, runs
// the schema again, and re-parses, so unsaved in-memory edits revert to
// the on-disk values.
//
// Concurrency:
// A ConfigFile has a single owner. Operations are synchronous and must
// not be interleaved from multiple goroutines; wrap the ConfigFile in
// your own lock if shared access is needed.
package inicfg
