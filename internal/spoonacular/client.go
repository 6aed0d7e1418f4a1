// Package spoonacular talks to the external recipe search API. The API is
// treated as an unreliable upstream: search-style calls report availability
// through a tagged Outcome instead of an error, and detail calls surface the
// upstream status code so handlers can pass it through.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// IDPrefix disambiguates upstream identifiers from local integer IDs.
const IDPrefix = "spoonacular_"

// Source tags every normalized upstream record.
const Source = "spoonacular"

// IsUpstreamID reports whether id refers to an upstream record.
func IsUpstreamID(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}

// Config carries the credentials and endpoint for the upstream API.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client is a thin HTTP client for the upstream API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a Client. A nil httpClient falls back to the transport
// default, including its default (absent) timeout; the merge path accepts
// that latency risk because upstream failure never fails the request.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.spoonacular.com"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}
}

// Record is a transient, normalized upstream recipe. It exists only for the
// duration of one response and is never persisted. Fields a local record has
// but the upstream cannot supply are simply absent from the JSON shape.
type Record struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Source       string   `json:"source"`
}

// Nutrient is a single extracted nutrition entry.
type Nutrient struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Detail is the detail-shaped upstream record.
type Detail struct {
	Record
	Summary        string              `json:"summary"`
	ReadyInMinutes int                 `json:"readyInMinutes"`
	Servings       int                 `json:"servings"`
	SourceURL      string              `json:"sourceUrl"`
	Nutrition      map[string]Nutrient `json:"nutrition"`
}

// Outcome is the tagged result of a best-effort upstream call. Exactly one
// of Records / Unavailable is meaningful; callers on the list path must
// explicitly choose to append nothing when Unavailable is set.
type Outcome struct {
	Records     []Record
	Unavailable bool
	Reason      string
}

func unavailable(format string, args ...any) Outcome {
	return Outcome{Unavailable: true, Reason: fmt.Sprintf(format, args...)}
}

// StatusError reports a non-200 upstream response on the detail path.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

type apiIngredient struct {
	Original string `json:"original"`
}

type apiRecipe struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Image               string          `json:"image"`
	Instructions        string          `json:"instructions"`
	Summary             string          `json:"summary"`
	ReadyInMinutes      int             `json:"readyInMinutes"`
	Servings            int             `json:"servings"`
	SourceURL           string          `json:"sourceUrl"`
	ExtendedIngredients []apiIngredient `json:"extendedIngredients"`
	Nutrition           struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

func (r *apiRecipe) record() Record {
	ingredients := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}
	return Record{
		ID:           IDPrefix + strconv.FormatInt(r.ID, 10),
		Title:        r.Title,
		Image:        r.Image,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		Source:       Source,
	}
}

// Search issues one complexSearch call bounded to limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) Outcome {
	params := url.Values{
		"query":                []string{query},
		"number":               []string{strconv.Itoa(limit)},
		"apiKey":               []string{c.apiKey},
		"addRecipeInformation": []string{"true"},
	}

	var body struct {
		Results []apiRecipe `json:"results"`
	}
	if reason := c.get(ctx, "/recipes/complexSearch", params, &body); reason != "" {
		return unavailable("%s", reason)
	}

	records := make([]Record, 0, len(body.Results))
	for i := range body.Results {
		records = append(records, body.Results[i].record())
	}
	return Outcome{Records: records}
}

// Random fetches a random sample of upstream recipes.
func (c *Client) Random(ctx context.Context, count int) Outcome {
	params := url.Values{
		"number": []string{strconv.Itoa(count)},
		"apiKey": []string{c.apiKey},
	}

	var body struct {
		Recipes []apiRecipe `json:"recipes"`
	}
	if reason := c.get(ctx, "/recipes/random", params, &body); reason != "" {
		return unavailable("%s", reason)
	}

	records := make([]Record, 0, len(body.Recipes))
	for i := range body.Recipes {
		records = append(records, body.Recipes[i].record())
	}
	return Outcome{Records: records}
}

// Nutrient names extracted from the upstream nutrition payload.
var trackedNutrients = map[string]bool{
	"Calories":      true,
	"Protein":       true,
	"Fat":           true,
	"Carbohydrates": true,
}

// Information resolves one upstream recipe by its numeric id (the IDPrefix
// already stripped). A non-200 response is returned as *StatusError;
// transport and decode failures come back as plain errors.
func (c *Client) Information(ctx context.Context, id string) (*Detail, error) {
	params := url.Values{
		"apiKey":           []string{c.apiKey},
		"includeNutrition": []string{"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/recipes/"+url.PathEscape(id)+"/information?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var body apiRecipe
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding upstream detail: %w", err)
	}

	nutrition := make(map[string]Nutrient)
	for _, n := range body.Nutrition.Nutrients {
		if trackedNutrients[n.Name] {
			nutrition[strings.ToLower(n.Name)] = Nutrient{Amount: n.Amount, Unit: n.Unit}
		}
	}

	return &Detail{
		Record:         body.record(),
		Summary:        body.Summary,
		ReadyInMinutes: body.ReadyInMinutes,
		Servings:       body.Servings,
		SourceURL:      body.SourceURL,
		Nutrition:      nutrition,
	}, nil
}

// get performs one GET and decodes a 200 response into out. It returns a
// non-empty reason string on any failure, which callers fold into an
// Unavailable outcome.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err.Error()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Sprintf("malformed payload: %v", err)
	}
	return ""
}
