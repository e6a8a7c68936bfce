package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/proyection/proyection-api/internal/server/repositories/banks"
)

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.reference.ListCountries(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondData(w, http.StatusOK, "Countries retrieved successfully", map[string]any{
		"countries": countries,
		"count":     len(countries),
	})
}

func (s *Server) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := s.reference.GetCountry(r.Context(), chi.URLParam(r, "iso"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondData(w, http.StatusOK, "Country retrieved successfully", map[string]any{
		"country": country,
	})
}

func (s *Server) handleListBanks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := banks.ListFilter{
		CountryCode: q.Get("country"),
		BankingType: q.Get("bankingType"),
	}
	if v := q.Get("popular"); v != "" {
		popular, err := strconv.ParseBool(v)
		if err == nil {
			filter.Popular = &popular
		}
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	// Normalize before querying so the echoed pagination matches the bounds
	// the repository applies.
	filter = filter.Normalize()

	list, total, err := s.reference.ListBanks(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Banks retrieved successfully", map[string]any{
		"banks": list,
		"pagination": map[string]any{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

func (s *Server) handleListBanksByCountry(w http.ResponseWriter, r *http.Request) {
	list, err := s.reference.ListBanksByCountry(r.Context(), chi.URLParam(r, "iso"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondData(w, http.StatusOK, "Banks retrieved successfully", map[string]any{
		"banks": list,
		"count": len(list),
	})
}

func (s *Server) handleListPopularBanks(w http.ResponseWriter, r *http.Request) {
	list, err := s.reference.ListPopularBanks(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondData(w, http.StatusOK, "Popular banks retrieved successfully", map[string]any{
		"banks": list,
		"count": len(list),
	})
}
