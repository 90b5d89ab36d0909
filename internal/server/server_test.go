package server

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestRoot(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "Chronos Terminal API") {
		t.Fatalf("unexpected root body %q", data)
	}
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{
		"name":        "Cell",
		"description": "A damp stone cell.",
		"exits":       map[string]string{"north": "placeholder"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "Cell" || body["description"] != "A damp stone cell." {
		t.Fatalf("unexpected room %#v", body)
	}
	if body["timeFlowRate"] != 1.0 {
		t.Fatalf("expected default timeFlowRate 1, got %v", body["timeFlowRate"])
	}
	if _, ok := body["id"].(string); !ok {
		t.Fatalf("expected room id, got %#v", body["id"])
	}
}

func TestCreateRoomMissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{"name": "Cell"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	assertCode(t, body, "validation")
	if body["error"] != "description is required" {
		t.Fatalf("unexpected error message %#v", body)
	}
}

func TestCreateRoomDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	createRoom(t, ts, "Cell", "First.", nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{
		"name":        "Cell",
		"description": "Second.",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	assertCode(t, decodeBody(t, resp), "duplicate_name")
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)
	roomID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["id"] != roomID || body["name"] != "Cell" {
		t.Fatalf("unexpected room %#v", body)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	assertCode(t, decodeBody(t, resp), "not_found")
}

func TestUpdateRoomMergesExits(t *testing.T) {
	ts := newTestServer(t)
	hallID := createRoom(t, ts, "Hall", "A long hall.", nil)
	yardID := createRoom(t, ts, "Yard", "An open yard.", nil)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)

	resp := doRequest(t, ts, http.MethodPut, "/api/rooms/"+cellID, map[string]any{
		"exits": map[string]string{"north": hallID},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	// A later patch for another direction must not drop north.
	resp = doRequest(t, ts, http.MethodPut, "/api/rooms/"+cellID, map[string]any{
		"exits": map[string]string{"east": yardID},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	exits, ok := body["exits"].(map[string]any)
	if !ok {
		t.Fatalf("expected exits map, got %#v", body["exits"])
	}
	if exits["north"] != hallID || exits["east"] != yardID {
		t.Fatalf("unexpected exits %#v", exits)
	}
}

func TestUpdateRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPut, "/api/rooms/missing", map[string]any{
		"description": "New.",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestCreatePlayerUnknownStartingRoom(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/player", map[string]string{
		"name":           "Sam",
		"startingRoomId": "missing",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	assertCode(t, decodeBody(t, resp), "not_found")
}

func TestCreatePlayerMissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/player", map[string]string{"name": "Sam"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	assertCode(t, body, "validation")
	if body["error"] != "startingRoomId is required" {
		t.Fatalf("unexpected error message %#v", body)
	}
}

func TestGetPlayerResolvesRoom(t *testing.T) {
	ts := newTestServer(t)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)
	playerID := createPlayer(t, ts, "Sam", cellID)

	resp := doRequest(t, ts, http.MethodGet, "/api/player/"+playerID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["currentRoom"] != cellID {
		t.Fatalf("unexpected currentRoom %#v", body["currentRoom"])
	}
	room, ok := body["room"].(map[string]any)
	if !ok {
		t.Fatalf("expected room summary, got %#v", body["room"])
	}
	if room["name"] != "Cell" || room["description"] != "A damp stone cell." || room["timeFlowRate"] != 1.0 {
		t.Fatalf("unexpected summary %#v", room)
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/player/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestMoveScenario(t *testing.T) {
	ts := newTestServer(t)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)
	hallID := createRoom(t, ts, "Hall", "A long hall.", nil)

	resp := doRequest(t, ts, http.MethodPut, "/api/rooms/"+cellID, map[string]any{
		"exits": map[string]string{"north": hallID},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch exits: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	playerID := createPlayer(t, ts, "Sam", cellID)

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+cellID+"/move", map[string]string{
		"playerId":  playerID,
		"direction": "north",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move north: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Moved north to Hall" {
		t.Fatalf("unexpected message %#v", body["message"])
	}
	room, ok := body["room"].(map[string]any)
	if !ok || room["id"] != hallID || room["name"] != "Hall" {
		t.Fatalf("unexpected room %#v", body["room"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/player/"+playerID, nil)
	view := decodeBody(t, resp)
	if view["currentRoom"] != hallID {
		t.Fatalf("expected player in Hall, got %#v", view["currentRoom"])
	}
	summary, _ := view["room"].(map[string]any)
	if summary == nil || summary["name"] != "Hall" {
		t.Fatalf("unexpected summary %#v", view["room"])
	}

	// Hall has no south exit; the player stays put.
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+hallID+"/move", map[string]string{
		"playerId":  playerID,
		"direction": "south",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("move south: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	body = decodeBody(t, resp)
	assertCode(t, body, "invalid_move")
	if body["error"] != "Cannot move south from here." {
		t.Fatalf("unexpected error message %#v", body["error"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/player/"+playerID, nil)
	view = decodeBody(t, resp)
	if view["currentRoom"] != hallID {
		t.Fatalf("failed move relocated the player: %#v", view["currentRoom"])
	}
}

func TestMoveDanglingExit(t *testing.T) {
	ts := newTestServer(t)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", map[string]string{
		"down": "room-that-never-existed",
	})
	playerID := createPlayer(t, ts, "Sam", cellID)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+cellID+"/move", map[string]string{
		"playerId":  playerID,
		"direction": "down",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	assertCode(t, body, "dangling_exit")

	resp = doRequest(t, ts, http.MethodGet, "/api/player/"+playerID, nil)
	view := decodeBody(t, resp)
	if view["currentRoom"] != cellID {
		t.Fatalf("dangling move relocated the player: %#v", view["currentRoom"])
	}
}

func TestMoveUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+cellID+"/move", map[string]string{
		"playerId":  "ghost",
		"direction": "north",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	assertCode(t, decodeBody(t, resp), "not_found")
}

func TestMoveMissingDirection(t *testing.T) {
	ts := newTestServer(t)
	cellID := createRoom(t, ts, "Cell", "A damp stone cell.", nil)
	playerID := createPlayer(t, ts, "Sam", cellID)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+cellID+"/move", map[string]string{
		"playerId": playerID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	assertCode(t, body, "validation")
	if body["error"] != "direction is required" {
		t.Fatalf("unexpected error message %#v", body["error"])
	}
}
