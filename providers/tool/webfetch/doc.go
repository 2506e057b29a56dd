// Package webfetch provides a tool that fetches web pages as Markdown.
package webfetch
