package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SamGovBackend searches the SAM.gov public opportunity API. The basic
// search endpoint needs no API key.
type SamGovBackend struct {
	baseURL string
	client  *http.Client
}

func NewSamGovBackend(baseURL string, timeout time.Duration) *SamGovBackend {
	if baseURL == "" {
		baseURL = "https://sam.gov/api/prod/opportunities/v2"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SamGovBackend{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (b *SamGovBackend) Name() string { return "sam.gov" }

type samGovResponse struct {
	OpportunityData []struct {
		Title                 string `json:"title"`
		OpportunityID         string `json:"opportunityId"`
		ResponseDeadLine      string `json:"responseDeadLine"`
		NaicsCode             string `json:"naicsCode"`
		SetAsideDescription   string `json:"typeOfSetAsideDescription"`
		Description           string `json:"description"`
		Type                  string `json:"type"`
		OrganizationHierarchy []struct {
			Name string `json:"name"`
		} `json:"organizationHierarchy"`
	} `json:"opportunityData"`
}

func (b *SamGovBackend) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("size", strconv.Itoa(limit))
	params.Set("index", "opp")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sam.gov search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sam.gov search: status %d", resp.StatusCode)
	}

	var data samGovResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("sam.gov search: decode: %w", err)
	}

	var results []Record
	for _, opp := range data.OpportunityData {
		if len(results) >= limit {
			break
		}
		agency := ""
		if n := len(opp.OrganizationHierarchy); n > 0 {
			agency = opp.OrganizationHierarchy[n-1].Name
		}
		results = append(results, Record{
			Source:  "sam.gov",
			Title:   opp.Title,
			URL:     "https://sam.gov/opp/" + opp.OpportunityID,
			Snippet: truncate(opp.Description, 500),
			Fields: map[string]any{
				"agency":      agency,
				"deadline":    opp.ResponseDeadLine,
				"naics":       opp.NaicsCode,
				"set_aside":   opp.SetAsideDescription,
				"notice_type": opp.Type,
			},
		})
	}
	return results, nil
}
