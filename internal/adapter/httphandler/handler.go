package httphandler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
)

// POST v1/scan multipart "image" field (200 ScanResponse, 400 Bad request)
// GET v1/products/{gtin} (200 ScanResponse, 400 Bad request)
// GET v1/stats/{category} (200 StatsResponse, 204 No content)
// GET v1/health (200 OK)

type ScanHandler struct {
	scanner  port.ProductScanner
	resolver port.ProductResolver
}

func RegisterScan(
	mux *http.ServeMux, scanner port.ProductScanner, resolver port.ProductResolver,
) {
	h := ScanHandler{scanner, resolver}
	mux.HandleFunc("POST /v1/scan", h.PostScan)
	mux.HandleFunc("GET /v1/products/{gtin}", h.GetProduct)
}

func (h ScanHandler) PostScan(w http.ResponseWriter, r *http.Request) {
	const op = "ScanHandler.PostScan"
	log := slog.With("op", op)

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read image", http.StatusBadRequest)
		log.Warn("failed to read upload", "err", err)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty image file", http.StatusBadRequest)
		return
	}

	report, err := h.scanner.ScanImage(r.Context(), data)
	if err != nil {
		log.Error("scan pipeline failed", "err", err)
		writeJSON(w, errorResponse())
		return
	}

	log.Info("scan complete", "status", report.Status.String(), "gtin", report.GTIN)
	writeJSON(w, toResponse(report))
}

func (h ScanHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ScanHandler.GetProduct"
	log := slog.With("op", op)

	gtin := r.PathValue("gtin")
	if !domain.ValidGTIN(gtin) {
		http.Error(w, "invalid barcode format", http.StatusBadRequest)
		return
	}

	report, err := h.resolver.ResolveGTIN(r.Context(), gtin)
	if err != nil {
		log.Error("lookup pipeline failed", "err", err, "gtin", gtin)
		writeJSON(w, errorResponse())
		return
	}

	log.Info("lookup complete", "status", report.Status.String(), "gtin", gtin)
	writeJSON(w, toResponse(report))
}

type StatsHandler struct {
	stats port.CategoryStatsReader
}

func RegisterStats(mux *http.ServeMux, stats port.CategoryStatsReader) {
	h := StatsHandler{stats}
	mux.HandleFunc("GET /v1/stats/{category}", h.GetStats)
}

func (h StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "StatsHandler.GetStats"
	log := slog.With("op", op)

	category := r.PathValue("category")
	cs, ok, err := h.stats.CategoryStats(category)
	if err != nil {
		log.Error("failed to read stats", "err", err, "category", category)
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, StatsResponse{
		Category:   cs.Category,
		Scans:      cs.Scans,
		HighCarbon: cs.HighCarbon,
	})
}

func RegisterHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// errorResponse is the generic envelope for unhandled pipeline faults;
// no internal detail leaks to the caller.
func errorResponse() ScanResponse {
	return ScanResponse{
		Status:          domain.StatusError.String(),
		Message:         "Internal error. Please try again later.",
		Recommendations: []Recommendation{},
		Alternatives:    []Alternative{},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
