// Package io reads procurement records and reads and writes treemap layouts.
//
// # Records
//
// [ReadRecords] loads line items from a file, picking the parser from the
// extension:
//
//   - .csv: header row then one line item per row
//   - .json: an array of objects
//   - .xlsx: the first worksheet (or the one named by [WithSheet])
//
// The category column is required, the value column is required and the
// subcategory column is optional. Headers are matched case-insensitively
// against [DefaultColumns] or the names given with [WithColumns]:
//
//	category,subcategory,amount
//	IT,Laptops,"$1,200.00"
//	Facilities,Rent,4 500
//
// Amounts may carry currency symbols, grouping separators and accounting
// parentheses for negatives. Negative amounts parse but are rejected later
// by the aggregator.
//
// # Layout Documents
//
// [WriteLayout] and [ReadLayout] round-trip a laid-out chart as JSON:
//
//	{
//	  "version": 1,
//	  "canvas": {"x": 0, "y": 0, "width": 1200, "height": 800},
//	  "padding": 2, "header": 18, "total": 1250,
//	  "cells": [
//	    {"id": "IT", "label": "IT", "depth": 0,
//	     "rect": {"x": 0, "y": 0, "width": 768, "height": 800},
//	     "value": 800, "count": 2, "share": 0.64}
//	  ]
//	}
//
// The JSON sink writes the same document with extra presentation fields,
// so its output can also be read back with [ReadLayout].
package io
