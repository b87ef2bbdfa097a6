package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository/memory"
	"github.com/dustatron/mcpoker/internal/service"
	"github.com/dustatron/mcpoker/internal/transport/ws"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	auth := service.NewAuthService("test-secret")
	rooms := service.NewRoomService(store.Rooms(), store.Participants(), store.Votes(), store.History(), store.Messages(), nil, nil)
	participants := service.NewParticipantService(store.Participants(), store.Votes(), rooms, nil, auth)
	votes := service.NewVoteService(store.Votes(), store.Participants(), store.History(), rooms, nil)

	return NewRouter(&Container{
		AuthService:        auth,
		RoomService:        rooms,
		ParticipantService: participants,
		VoteService:        votes,
		HistoryService:     service.NewHistoryService(store.History()),
		MessageService:     service.NewMessageService(store.Messages(), store.Participants()),
		WSHub:              ws.NewHub(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// createAndJoin provisions a room with one participant and returns the room
// id and the participant's token.
func createAndJoin(t *testing.T, router http.Handler, roomName, participantName string) (string, string, string) {
	t.Helper()

	rec := doJSON(t, router, "POST", "/v1/rooms", "", map[string]string{"name": roomName})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create room status = %d, body %s", rec.Code, rec.Body)
	}
	var room model.Room
	decode(t, rec, &room)

	rec = doJSON(t, router, "POST", "/v1/rooms/"+room.ID+"/join", "", map[string]string{"name": participantName})
	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d, body %s", rec.Code, rec.Body)
	}
	var join model.JoinResponse
	decode(t, rec, &join)

	return room.ID, join.ParticipantID, join.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateRoomEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/v1/rooms", "", map[string]string{"name": "Planning"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var room model.Room
	decode(t, rec, &room)
	if len(room.ID) != 6 || room.Name != "Planning" {
		t.Errorf("room = %+v", room)
	}
}

func TestCreateRoomRejectsBadNames(t *testing.T) {
	router := newTestRouter(t)

	for _, name := range []string{"", string(make([]byte, 51))} {
		rec := doJSON(t, router, "POST", "/v1/rooms", "", map[string]string{"name": name})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("name %q: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestGetRoomEndpoint(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, _ := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "GET", "/v1/rooms/"+roomID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/v1/rooms/NOSUCH", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown room status = %d, want 404", rec.Code)
	}
}

func TestJoinUnknownRoomEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/v1/rooms/NOSUCH/join", "", map[string]string{"name": "Alice"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestParticipantRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, _ := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/votes/status", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/votes/status", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestTokenScopedToItsRoom(t *testing.T) {
	router := newTestRouter(t)
	_, _, token := createAndJoin(t, router, "Room A", "Alice")
	otherRoom, _, _ := createAndJoin(t, router, "Room B", "Bob")

	rec := doJSON(t, router, "GET", "/v1/rooms/"+otherRoom+"/votes/status", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-room token: status = %d, want 403", rec.Code)
	}
}

func TestVotingRoundOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, aliceToken := createAndJoin(t, router, "Sprint 1", "Alice")

	rec := doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/join", "", map[string]string{"name": "Bob"})
	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d", rec.Code)
	}
	var bob model.JoinResponse
	decode(t, rec, &bob)

	// Both cast.
	rec = doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/votes", aliceToken,
		map[string]interface{}{"value": model.Estimate(5)})
	if rec.Code != http.StatusOK {
		t.Fatalf("alice cast status = %d, body %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/votes", bob.Token,
		map[string]interface{}{"value": model.Estimate(8)})
	if rec.Code != http.StatusOK {
		t.Fatalf("bob cast status = %d", rec.Code)
	}

	var status model.VoteStatus
	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/votes/status", aliceToken, nil)
	decode(t, rec, &status)
	want := model.VoteStatus{TotalParticipants: 2, VotedCount: 2, Revealed: false, AllVoted: true}
	if status != want {
		t.Errorf("status = %+v, want %+v", status, want)
	}

	// Reveal, then reset.
	rec = doJSON(t, router, "PUT", "/v1/rooms/"+roomID+"/reveal", aliceToken, map[string]bool{"revealed": true})
	var reveal model.RevealResult
	decode(t, rec, &reveal)
	if reveal.UpdatedVotes != 2 {
		t.Errorf("UpdatedVotes = %d, want 2", reveal.UpdatedVotes)
	}

	rec = doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/reset", aliceToken, nil)
	var reset model.ResetResult
	decode(t, rec, &reset)
	if reset.ClearedVotes != 2 {
		t.Errorf("ClearedVotes = %d, want 2", reset.ClearedVotes)
	}

	// The round landed in history.
	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/history/latest", aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status = %d", rec.Code)
	}
	var entry model.HistoryEntry
	decode(t, rec, &entry)
	if entry.RoundNumber != 1 || len(entry.Votes) != 2 {
		t.Errorf("latest = %+v, want round 1 with 2 votes", entry)
	}

	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/history/count", aliceToken, nil)
	var count map[string]int
	decode(t, rec, &count)
	if count["count"] != 1 {
		t.Errorf("count = %d, want 1", count["count"])
	}
}

func TestCastRejectsUnknownKind(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, token := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/votes", token,
		map[string]interface{}{"value": map[string]interface{}{"kind": "maybe"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryLatestEmpty(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, token := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/history/latest", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any round", rec.Code)
	}
}

func TestParticipantLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, token := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "PUT", "/v1/participants/name", token, map[string]string{"name": "Alicia"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/v1/participants/heartbeat", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("heartbeat status = %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/participants", token, nil)
	var list struct {
		Participants []*model.Participant `json:"participants"`
	}
	decode(t, rec, &list)
	if len(list.Participants) != 1 || list.Participants[0].Name != "Alicia" {
		t.Errorf("participants = %+v, want one named Alicia", list.Participants)
	}

	rec = doJSON(t, router, "POST", "/v1/participants/leave", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leave status = %d", rec.Code)
	}
	var left model.LeaveResult
	decode(t, rec, &left)
	if left.DeletedParticipant != "Alicia" {
		t.Errorf("DeletedParticipant = %q, want Alicia", left.DeletedParticipant)
	}

	// The token still parses but its participant row is gone.
	rec = doJSON(t, router, "POST", "/v1/participants/heartbeat", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("post-leave heartbeat status = %d, want 404", rec.Code)
	}
}

func TestMessagesOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	roomID, _, token := createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/messages", token, map[string]string{"body": "shall we start?"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("send status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, "POST", "/v1/rooms/"+roomID+"/messages", token, map[string]string{"body": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/v1/rooms/"+roomID+"/messages", token, nil)
	var list struct {
		Messages []*model.MessageView `json:"messages"`
	}
	decode(t, rec, &list)
	if len(list.Messages) != 1 || list.Messages[0].Author != "Alice" {
		t.Errorf("messages = %+v, want one from Alice", list.Messages)
	}
}

func TestMaintenanceEndpoints(t *testing.T) {
	router := newTestRouter(t)
	createAndJoin(t, router, "Planning", "Alice")

	rec := doJSON(t, router, "POST", "/v1/maintenance/rooms/cleanup", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", rec.Code)
	}
	var cleanup model.CleanupResult
	decode(t, rec, &cleanup)
	if cleanup.CleanedRooms != 0 {
		t.Errorf("CleanedRooms = %d, want 0 for a fresh room", cleanup.CleanedRooms)
	}

	rec = doJSON(t, router, "POST", "/v1/maintenance/participants/disconnect", "", map[string]int{"timeoutMinutes": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("disconnect status = %d", rec.Code)
	}
	var disc model.DisconnectResult
	decode(t, rec, &disc)
	if disc.DisconnectedCount != 0 {
		t.Errorf("DisconnectedCount = %d, want 0 for a fresh participant", disc.DisconnectedCount)
	}
}
