package velixar

// Retention tiers as defined by the Velixar memory API.
const (
	TierPinned   = 0
	TierSession  = 1
	TierLongTerm = 2
	TierOrg      = 3
)

/*
Memory is a single memory record as returned by the Velixar API. The score
field is only present on search results, and timestamps are passed through
without interpretation.
*/
type Memory struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	Tier      int      `json:"tier"`
	Score     *float64 `json:"score,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

/*
CreateMemoryRequest is the body for POST /memory. Tier and Tags are always
transmitted; the caller applies defaults before building the request.
*/
type CreateMemoryRequest struct {
	Content string   `json:"content"`
	UserID  string   `json:"user_id"`
	Tier    int      `json:"tier"`
	Tags    []string `json:"tags"`
}

type CreateMemoryResponse struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

type SearchMemoriesResponse struct {
	Memories []Memory `json:"memories"`
	Error    string   `json:"error,omitempty"`
}

/*
ListMemoriesResponse is the body for GET /memory/list. Cursor, when present,
is an opaque continuation token to be passed back verbatim; it is never
constructed locally.
*/
type ListMemoriesResponse struct {
	Memories []Memory `json:"memories"`
	Cursor   string   `json:"cursor,omitempty"`
	Error    string   `json:"error,omitempty"`
}

/*
UpdateMemoryRequest is the body for PATCH /memory/{id}. Content and Tags are
pointers so that omitted fields are not transmitted at all, distinguishing
"leave unchanged" from "set to empty".
*/
type UpdateMemoryRequest struct {
	UserID  string    `json:"user_id"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

type UpdateMemoryResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type DeleteMemoryResponse struct {
	Deleted bool   `json:"deleted,omitempty"`
	Error   string `json:"error,omitempty"`
}
