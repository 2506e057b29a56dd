// Package websearch provides a Tavily-backed web search tool.
package websearch
