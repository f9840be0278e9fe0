// Package report formats servit CLI results for humans or as JSON.
//
// The ls command renders a Listing and the inspect command renders an
// Inspection. Pick the formatter from the --json and --quiet flags:
//
//	f := report.NewFormatter(jsonOutput, quiet)
//	_ = f.FormatListing(os.Stdout, &report.Listing{Root: dir, Assets: assets})
package report
