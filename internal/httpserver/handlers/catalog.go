package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/present"
	"github.com/MrSnakeDoc/apihub/internal/query"
)

type topDisplay struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Calls  string `json:"calls"`
	Uptime string `json:"uptime"`
}

type dashboardDisplay struct {
	TotalAPIs        string       `json:"totalApis"`
	TotalAPICalls    string       `json:"totalApiCalls"`
	NewAPIsLastMonth string       `json:"newApisLastMonth"`
	ActiveUsers      string       `json:"activeUsers"`
	TopAPIs          []topDisplay `json:"topApis"`
}

type dashboardResponse struct {
	Metrics domain.Metrics   `json:"metrics"`
	Display dashboardDisplay `json:"display"`
}

// Dashboard serves the aggregate counters with their compact renderings.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := d.MemoryIndex.Metrics()
		if !ok {
			writeLoading(w)
			return
		}
		writeJSON(w, http.StatusOK, dashboardResponse{Metrics: m, Display: displayMetrics(m)})
	}
}

func displayMetrics(m domain.Metrics) dashboardDisplay {
	top := make([]topDisplay, 0, len(m.TopAPIs))
	for _, t := range m.TopAPIs {
		top = append(top, topDisplay{
			ID:     t.ID,
			Name:   t.Name,
			Calls:  query.FormatCompact(t.Calls),
			Uptime: present.FormatUptime(t.Uptime),
		})
	}
	return dashboardDisplay{
		TotalAPIs:        strconv.Itoa(m.TotalAPIs),
		TotalAPICalls:    query.FormatCompact(m.TotalAPICalls),
		NewAPIsLastMonth: strconv.Itoa(m.NewAPIsLastMonth),
		ActiveUsers:      query.FormatCompact(m.ActiveUsers),
		TopAPIs:          top,
	}
}

// Categories serves the category list.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, ok := d.MemoryIndex.Categories()
		if !ok {
			writeLoading(w)
			return
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

type listingsResponse struct {
	State query.State `json:"state"`
	// Query is the canonical query string of State, for the address bar.
	Query string `json:"query"`
	query.Result
	Count int `json:"count"`
	Total int `json:"total"`
}

// Listings runs the query engine over the snapshot. Besides the filter
// parameters it understands reset=1 and remove=<active filter label>.
func Listings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, ok := d.MemoryIndex.Listings()
		if !ok {
			writeLoading(w)
			return
		}
		cats, _ := d.MemoryIndex.Categories()

		params := r.URL.Query()
		state := query.ParseState(params)
		if reset, _ := strconv.ParseBool(params.Get("reset")); reset {
			state.Reset()
		}
		for _, label := range params["remove"] {
			state.RemoveFilter(label)
		}

		res := query.Apply(listings, cats, state)
		writeJSON(w, http.StatusOK, listingsResponse{
			State:  state,
			Query:  state.Values().Encode(),
			Result: res,
			Count:  len(res.Listings),
			Total:  len(listings),
		})
	}
}
