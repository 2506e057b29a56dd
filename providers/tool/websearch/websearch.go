package websearch

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"schedbot/internal/utils"
	"schedbot/providers/tool"
)

// baseURL is a variable so tests can point it at a local server.
var baseURL = "https://api.tavily.com"

const (
	envAPIKey  = "TAVILY_API_KEY"
	maxResults = 20

	defaultResults = 3
)

// SearchInput is the tool input for a web search.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"description=The search query,required"`
	NumResults int    `json:"num_results,omitempty" jsonschema:"description=Number of results to return,default=3"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	Rank    int    `json:"rank"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// SearchOutput is the tool output: the query echoed back plus ranked results.
type SearchOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// NewWebSearchTool creates a Tavily-backed web search tool. It lets the
// assistant look up context around an event, venue details or attendee
// organizations. Requires the TAVILY_API_KEY environment variable.
func NewWebSearchTool() *tool.Tool[SearchInput, SearchOutput] {
	return tool.NewTool[SearchInput, SearchOutput](
		"web_search",
		Search,
		tool.WithDescription("Search the web for recent information using the Tavily API. Returns ranked results with title, snippet and url. Requires TAVILY_API_KEY environment variable."),
	)
}

// Search performs the web search and ranks the results.
func Search(ctx context.Context, input SearchInput) (SearchOutput, error) {
	if input.Query == "" {
		return SearchOutput{}, fmt.Errorf("query must not be empty")
	}

	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		return SearchOutput{}, fmt.Errorf("%s environment variable is not set", envAPIKey)
	}

	numResults := input.NumResults
	if numResults <= 0 {
		numResults = defaultResults
	}
	if numResults > maxResults {
		numResults = maxResults
	}

	reqBody := tavilyRequest{
		Query:       input.Query,
		MaxResults:  numResults,
		SearchDepth: "advanced",
	}

	_, apiResponse, err := utils.DoPostSync[tavilyResponse](ctx, &http.Client{}, baseURL+"/search", apiKey, reqBody)
	if err != nil {
		return SearchOutput{}, fmt.Errorf("tavily search: %w", err)
	}

	results := make([]SearchResult, 0, len(apiResponse.Results))
	for i, r := range apiResponse.Results {
		results = append(results, SearchResult{
			Rank:    i + 1,
			Title:   r.Title,
			Snippet: r.Content,
			URL:     r.URL,
		})
	}

	return SearchOutput{Query: input.Query, Results: results}, nil
}
