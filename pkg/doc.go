// Package pkg holds the spendmap libraries.
//
// # Overview
//
// Spendmap turns procurement line items into a two-level treemap: one
// rectangle per category, subdivided by subcategory, each sized by spend.
//
//  1. [io] - Record importers (CSV, JSON, XLSX) and the layout document
//  2. [spend] - Aggregation, sorting, folding and amount formatting
//  3. [treemap] - The squarified layout engine
//  4. [chart] - Nested category/subcategory layout on a canvas
//  5. [render] - Styles and sinks (SVG, PNG, JSON, DOT)
//  6. [pipeline] - Orchestration (load → aggregate → layout → render)
//
// # Architecture
//
//	records.csv / .json / .xlsx
//	         ↓
//	    [io] package (read records)
//	         ↓
//	    [spend] package (categories and subcategories)
//	         ↓
//	    [chart] package, backed by [treemap]
//	         ↓
//	    [render/sink] package
//	         ↓
//	    SVG/PNG/JSON/DOT output
//
// # Quick Start
//
//	records, err := io.ReadRecords("q3.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nodes, err := spend.Aggregate(records)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ch, err := chart.New(nodes, treemap.Rect{W: 1200, H: 800}, chart.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := sink.RenderSVG(ch)
//
// Supporting packages: [config] for the TOML settings file, [errors] for
// coded errors, [observability] for pipeline hooks, [fonts] for PNG text
// and [buildinfo] for version stamping.
package pkg
