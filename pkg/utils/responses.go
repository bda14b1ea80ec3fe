package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope shapes follow the public API contract: successful mutations
// return {"status":"success","record":...}, listings return {"records":[...]}.

type RecordResponse struct {
	Status string `json:"status"`
	Record any    `json:"record"`
}

type RecordsResponse struct {
	Records any `json:"records"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// ResponseRecord writes a single record with the given status code.
func ResponseRecord(w http.ResponseWriter, code int, record any) {
	writeJSON(w, code, RecordResponse{Status: "success", Record: record})
}

// ResponseRecords writes a record list, 200 OK.
func ResponseRecords(w http.ResponseWriter, records any) {
	writeJSON(w, http.StatusOK, RecordsResponse{Records: records})
}

// ResponseMessage writes a success message without a record, 200 OK.
func ResponseMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, MessageResponse{Status: "success", Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Status: "error", Message: message, Errors: errors})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Status: "error", Message: message})
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, ErrorResponse{Status: "error", Message: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Status: "error", Message: message})
}
