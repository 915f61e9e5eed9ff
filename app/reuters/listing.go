package reuters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	topicListingPath   = "/pf/api/v3/content/fetch/articles-by-topic-v1"
	sectionListingPath = "/pf/api/v3/content/fetch/articles-by-section-alias-or-id-v1"
)

// listingQuery is the JSON payload both listing APIs take in their single
// "query" parameter.
type listingQuery struct {
	Offset      int    `json:"offset"`
	Size        int    `json:"size"`
	SectionID   string `json:"section_id,omitempty"`
	TopicURL    string `json:"topic_url,omitempty"`
	Website     string `json:"website"`
	FetchType   string `json:"fetch_type,omitempty"`
	SophiPage   string `json:"sophi_page,omitempty"`
	SophiWidget string `json:"sophi_widget,omitempty"`
}

// Listing carries the response metadata of whichever listing branch ran,
// plus the raw articles for normalization.
type Listing struct {
	Title       string
	Description string
	Link        string // canonical section/topic page
	RootURL     string // root for resolving relative article links
	Articles    []articleJSON
}

// ListingFetcher resolves a category/topic pair into the matching listing
// API call: topic-keyed categories ("authors", "tags") go through the
// topic API, everything else through the section API.
type ListingFetcher struct {
	client *Client
}

func NewListingFetcher(client *Client) *ListingFetcher {
	return &ListingFetcher{client: client}
}

func (f *ListingFetcher) Fetch(ctx context.Context, req Request) (*Listing, error) {
	if tc, ok := routes.TopicCategories[req.Category]; ok {
		topic := req.Topic
		if topic == "" {
			topic = tc.DefaultTopic
		}
		return f.fetchTopic(ctx, req, SectionPath(req.Category, topic))
	}

	return f.fetchSection(ctx, req, SectionPath(req.Category, req.Topic))
}

func (f *ListingFetcher) fetchTopic(ctx context.Context, req Request, path string) (*Listing, error) {
	query := listingQuery{
		Size:     req.Limit,
		TopicURL: path,
		Website:  "reuters",
	}

	var resp topicResponse
	if err := f.client.GetJSON(ctx, topicListingPath, encodeQuery(query), &resp); err != nil {
		return nil, fmt.Errorf("topic listing %s: %w", path, err)
	}

	if len(resp.Result.Topics) == 0 {
		return nil, fmt.Errorf("topic listing %s: no topic metadata in response", path)
	}

	topic := resp.Result.Topics[0]
	return &Listing{
		Title:       topic.Name,
		Description: topic.EntityID,
		Link:        f.client.BaseURL() + path,
		RootURL:     f.client.BaseURL(),
		Articles:    resp.Result.Articles,
	}, nil
}

func (f *ListingFetcher) fetchSection(ctx context.Context, req Request, path string) (*Listing, error) {
	query := listingQuery{
		Size:      req.Limit,
		SectionID: path,
		Website:   "reuters",
	}

	// Sophi ranking is only honored for allow-listed categories, and only
	// when the request names a topic
	if req.Sophi && sophiAllowed(req.Category) && req.Topic != "" {
		query.FetchType = "sophi"
		query.SophiPage = "*"
		query.SophiWidget = "topic"
	}

	var resp sectionResponse
	if err := f.client.GetJSON(ctx, sectionListingPath, encodeQuery(query), &resp); err != nil {
		return nil, fmt.Errorf("section listing %s: %w", path, err)
	}

	return &Listing{
		Title:       resp.Result.Section.Title,
		Description: resp.Result.Section.SectionAbout,
		Link:        f.client.BaseURL() + path,
		RootURL:     f.client.BaseURL(),
		Articles:    resp.Result.Articles,
	}, nil
}

func encodeQuery(query listingQuery) url.Values {
	// struct marshaling cannot fail here
	payload, _ := json.Marshal(query)
	return url.Values{"query": {string(payload)}}
}
