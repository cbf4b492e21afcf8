// Package export writes the slices shown by the dashboard to CSV files and
// renders its charts as PNG images.
package export
