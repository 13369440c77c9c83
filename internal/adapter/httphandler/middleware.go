package httphandler

import "net/http"

// maxUploadBytes bounds the scan upload; barcode photos are far below
// this, anything larger is rejected before it reaches the decoder.
const maxUploadBytes = 10 << 20

func LimitBody(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
