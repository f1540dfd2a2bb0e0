// Package report renders game history.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with a mermaid pie chart
//
// Writers implement the Writer interface, so the history command picks one
// by flag and otherwise treats them the same.
package report
