package velixar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/theapemachine/velixar-mcp/pkg/errors"
)

// capture records the last request the mock API received.
type capture struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   string
}

func newMockAPI(status int, response string, seen *capture) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		seen.method = r.Method
		seen.path = r.URL.Path
		seen.header = r.Header.Clone()
		seen.body = string(data)
		seen.query = map[string]string{}

		for key := range r.URL.Query() {
			seen.query[key] = r.URL.Query().Get(key)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestCreateMemory(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When creating a memory", func() {
			server := newMockAPI(http.StatusOK, `{"id": "m1"}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			id, err := client.CreateMemory(context.Background(), CreateMemoryRequest{
				Content: "db region note",
				UserID:  "default_user",
				Tier:    TierPinned,
				Tags:    []string{},
			})

			Convey("Then it POSTs to /memory with auth and full body", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "m1")
				So(seen.method, ShouldEqual, http.MethodPost)
				So(seen.path, ShouldEqual, "/memory")
				So(seen.header.Get("Authorization"), ShouldEqual, "Bearer secret")
				So(seen.header.Get("Content-Type"), ShouldEqual, "application/json")

				var body map[string]any
				So(json.Unmarshal([]byte(seen.body), &body), ShouldBeNil)
				So(body["content"], ShouldEqual, "db region note")
				So(body["user_id"], ShouldEqual, "default_user")
				// Explicit tier 0 must survive as 0, not the default.
				So(body["tier"], ShouldEqual, 0)
				So(body["tags"], ShouldResemble, []any{})
			})
		})

		Convey("When the response carries an error field", func() {
			server := newMockAPI(http.StatusOK, `{"error": "quota exceeded"}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			_, err := client.CreateMemory(context.Background(), CreateMemoryRequest{
				Content: "note",
				UserID:  "default_user",
				Tier:    TierLongTerm,
				Tags:    []string{},
			})

			Convey("Then an APIError surfaces with that message", func() {
				So(err, ShouldNotBeNil)
				apiErr, ok := err.(*errors.APIError)
				So(ok, ShouldBeTrue)
				So(apiErr.Message, ShouldEqual, "quota exceeded")
			})
		})

		Convey("When the response reports no error but no id either", func() {
			server := newMockAPI(http.StatusOK, `{}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			_, err := client.CreateMemory(context.Background(), CreateMemoryRequest{
				Content: "note",
				UserID:  "default_user",
				Tier:    TierLongTerm,
				Tags:    []string{},
			})

			Convey("Then a contract violation surfaces", func() {
				So(err, ShouldNotBeNil)
				_, ok := err.(*errors.ContractError)
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestSearchMemories(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When searching with a limit", func() {
			server := newMockAPI(http.StatusOK, `{"memories": [{"id": "m1", "content": "note", "tier": 2, "score": 0.87}]}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			memories, err := client.SearchMemories(context.Background(), "staging region", "default_user", 5)

			Convey("Then it GETs /memory/search with the right query", func() {
				So(err, ShouldBeNil)
				So(seen.method, ShouldEqual, http.MethodGet)
				So(seen.path, ShouldEqual, "/memory/search")
				So(seen.query["q"], ShouldEqual, "staging region")
				So(seen.query["user_id"], ShouldEqual, "default_user")
				So(seen.query["limit"], ShouldEqual, "5")
				So(len(memories), ShouldEqual, 1)
				So(*memories[0].Score, ShouldEqual, 0.87)
			})
		})

		Convey("When no limit is supplied", func() {
			server := newMockAPI(http.StatusOK, `{"memories": []}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			_, err := client.SearchMemories(context.Background(), "anything", "default_user", 0)

			Convey("Then the limit parameter is omitted", func() {
				So(err, ShouldBeNil)
				_, present := seen.query["limit"]
				So(present, ShouldBeFalse)
			})
		})
	})
}

func TestListMemories(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When listing with a cursor", func() {
			server := newMockAPI(http.StatusOK, `{"memories": [{"id": "m1", "content": "note", "tier": 2}], "cursor": "tok-2"}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			page, err := client.ListMemories(context.Background(), "default_user", 10, "tok-1")

			Convey("Then the cursor is passed through verbatim and returned", func() {
				So(err, ShouldBeNil)
				So(seen.path, ShouldEqual, "/memory/list")
				So(seen.query["cursor"], ShouldEqual, "tok-1")
				So(seen.query["limit"], ShouldEqual, "10")
				So(page.Cursor, ShouldEqual, "tok-2")
				So(len(page.Memories), ShouldEqual, 1)
			})
		})
	})
}

func TestUpdateMemory(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When updating only the content", func() {
			server := newMockAPI(http.StatusOK, `{"id": "m1"}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			content := "revised note"
			err := client.UpdateMemory(context.Background(), "m1", UpdateMemoryRequest{
				UserID:  "default_user",
				Content: &content,
			})

			Convey("Then the body carries content but no tags key at all", func() {
				So(err, ShouldBeNil)
				So(seen.method, ShouldEqual, http.MethodPatch)
				So(seen.path, ShouldEqual, "/memory/m1")
				So(seen.body, ShouldContainSubstring, `"content":"revised note"`)
				So(seen.body, ShouldNotContainSubstring, "tags")
			})
		})

		Convey("When updating only the tags", func() {
			server := newMockAPI(http.StatusOK, `{"id": "m1"}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			tags := []string{"infra"}
			err := client.UpdateMemory(context.Background(), "m1", UpdateMemoryRequest{
				UserID: "default_user",
				Tags:   &tags,
			})

			Convey("Then the body carries tags but no content key", func() {
				So(err, ShouldBeNil)
				So(seen.body, ShouldContainSubstring, `"tags":["infra"]`)
				So(seen.body, ShouldNotContainSubstring, "content")
			})
		})
	})
}

func TestDeleteMemory(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When deleting a memory", func() {
			server := newMockAPI(http.StatusOK, `{"deleted": true}`, &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			err := client.DeleteMemory(context.Background(), "m1")

			Convey("Then it DELETEs the item path", func() {
				So(err, ShouldBeNil)
				So(seen.method, ShouldEqual, http.MethodDelete)
				So(seen.path, ShouldEqual, "/memory/m1")
			})
		})
	})
}

func TestRequestTimeout(t *testing.T) {
	Convey("Given a velixar client with a short timeout", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Stall until the client gives up.
			<-r.Context().Done()
		}))
		defer server.Close()

		client := NewClient(server.URL, "secret").WithTimeout(50 * time.Millisecond)

		Convey("When the API never responds", func() {
			err := client.DeleteMemory(context.Background(), "m1")

			Convey("Then the call aborts with a TimeoutError", func() {
				So(err, ShouldNotBeNil)

				timeoutErr, ok := err.(*errors.TimeoutError)
				So(ok, ShouldBeTrue)
				So(timeoutErr.Timeout, ShouldEqual, 50*time.Millisecond)
			})
		})
	})
}

func TestStatusErrors(t *testing.T) {
	Convey("Given a velixar client", t, func() {
		var seen capture

		Convey("When the API returns a non-success status with a long body", func() {
			server := newMockAPI(http.StatusInternalServerError, strings.Repeat("x", 500), &seen)
			defer server.Close()
			client := NewClient(server.URL, "secret")

			err := client.DeleteMemory(context.Background(), "m1")

			Convey("Then a RequestError carries the status and a truncated snippet", func() {
				So(err, ShouldNotBeNil)
				reqErr, ok := err.(*errors.RequestError)
				So(ok, ShouldBeTrue)
				So(reqErr.Status, ShouldEqual, http.StatusInternalServerError)
				So(len(reqErr.Snippet), ShouldEqual, 200)
			})
		})
	})
}
