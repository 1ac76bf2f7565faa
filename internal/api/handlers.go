package api

import (
	"net/http"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/service"
)

// --- Пользователи ---

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body userBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var name, email string
	if body.Name != nil {
		name = *body.Name
	}
	if body.Email != nil {
		email = *body.Email
	}

	user, err := s.users.CreateUser(r.Context(), name, email)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAllUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body userBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.UpdateUser(r.Context(), id, service.UserPatch{Name: body.Name, Email: body.Email})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.users.DeleteUser(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Вещи ---

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body itemBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := service.ItemInput{Available: body.Available, RequestID: body.RequestID}
	if body.Name != nil {
		input.Name = *body.Name
	}
	if body.Description != nil {
		input.Description = *body.Description
	}

	item, err := s.items.CreateItem(r.Context(), ownerID, input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body itemBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := service.ItemPatch{Name: body.Name, Description: body.Description, Available: body.Available}
	item, err := s.items.UpdateItem(r.Context(), ownerID, itemID, patch)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.GetItem(r.Context(), uid, itemID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.ListItemsForOwner(r.Context(), ownerID, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	if _, err := userID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.SearchItems(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type commentBody struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body commentBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := s.items.AddComment(r.Context(), authorID, itemID, body.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// --- Бронирования ---

type bookingBody struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body bookingBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), bookerID, body.ItemID, body.Start, body.End)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rawApproved := r.URL.Query().Get("approved")
	if rawApproved != "true" && rawApproved != "false" {
		writeError(w, http.StatusBadRequest, "approved parameter must be true or false")
		return
	}
	approved := rawApproved == "true"

	booking, err := s.bookings.ApproveBooking(r.Context(), ownerID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.IncBookingDecision(booking.Status)
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), uid, bookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListBookingsForBooker(r.Context(), uid, r.URL.Query().Get("state"), from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListBookingsForOwner(r.Context(), uid, r.URL.Query().Get("state"), from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// --- Запросы вещей ---

type requestBody struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body requestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.CreateRequest(r.Context(), uid, body.Description)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetOwnRequests(r.Context(), uid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetOtherRequests(r.Context(), uid, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.GetRequest(r.Context(), uid, requestID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// pageParams читает параметры пагинации from/size.
func pageParams(r *http.Request) (int, int, error) {
	from, err := queryInt(r, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}
