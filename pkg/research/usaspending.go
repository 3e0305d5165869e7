package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// USASpendingBackend searches USASpending.gov (FPDS-NG) for past
// contract awards.
type USASpendingBackend struct {
	baseURL string
	client  *http.Client
}

func NewUSASpendingBackend(baseURL string, timeout time.Duration) *USASpendingBackend {
	if baseURL == "" {
		baseURL = "https://api.usaspending.gov"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &USASpendingBackend{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (b *USASpendingBackend) Name() string { return "usaspending.gov" }

type usaSpendingResponse struct {
	Results []map[string]any `json:"results"`
}

func (b *USASpendingBackend) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	payload := map[string]any{
		"filters": map[string]any{
			"keywords":         []string{query},
			"award_type_codes": []string{"A", "B", "C", "D"},
		},
		"fields": []string{
			"Award ID", "Recipient Name", "Award Amount",
			"Awarding Agency", "Awarding Sub Agency",
			"Award Date", "Description", "NAICS Code",
			"Period of Performance Start Date",
			"Period of Performance Current End Date",
		},
		"page":  1,
		"limit": limit,
		"sort":  "Award Amount",
		"order": "desc",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := b.baseURL + "/api/v2/search/spending_by_award/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usaspending search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usaspending search: status %d", resp.StatusCode)
	}

	var data usaSpendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("usaspending search: decode: %w", err)
	}

	var results []Record
	for _, award := range data.Results {
		if len(results) >= limit {
			break
		}
		rec := Record{
			Source:  "usaspending.gov",
			Title:   stringField(award, "Recipient Name"),
			Snippet: truncate(stringField(award, "Description"), 500),
			Fields: map[string]any{
				"award_id":   award["Award ID"],
				"amount":     award["Award Amount"],
				"agency":     award["Awarding Agency"],
				"sub_agency": award["Awarding Sub Agency"],
				"award_date": award["Award Date"],
				"naics":      award["NAICS Code"],
				"pop_start":  award["Period of Performance Start Date"],
				"pop_end":    award["Period of Performance Current End Date"],
			},
		}
		results = append(results, rec)
	}
	return results, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
