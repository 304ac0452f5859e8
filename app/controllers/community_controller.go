package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"agricare/app/middleware"
	"agricare/app/models"
	"agricare/app/services"
	"agricare/app/viewstate"

	"github.com/gorilla/mux"
)

// CommunityController handles HTTP requests for the community board.
// The JSON API is stateless; the web surface keeps one long-lived
// viewstate.View per signed-in user.
type CommunityController struct {
	service   *services.CommunityService
	templates map[string]*template.Template

	mu    sync.Mutex
	views map[int]*viewstate.View
}

// NewCommunityController creates a new CommunityController loading
// templates relative to basePath.
func NewCommunityController(service *services.CommunityService, basePath string) *CommunityController {
	return &CommunityController{
		service:   service,
		templates: loadCommunityTemplates(basePath),
		views:     make(map[int]*viewstate.View),
	}
}

// loadCommunityTemplates loads and parses the board templates
func loadCommunityTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["board"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/community/board.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	return templates
}

// view returns the board view for the signed-in session, creating it
// on first use. Views live for the life of the process, one per user
// ID; the auth state is refreshed on every request so a renamed
// account is rendered under its current name.
func (cc *CommunityController) view(auth models.AuthState) *viewstate.View {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	v, ok := cc.views[auth.User.ID]
	if !ok {
		v = viewstate.NewView(cc.service, auth)
		cc.views[auth.User.ID] = v
	} else {
		v.SetAuth(auth)
	}
	return v
}

// === JSON API ===

type contentInput struct {
	Content string `json:"content"`
}

// Tree handles listing the fully assembled post tree
func (cc *CommunityController) Tree(w http.ResponseWriter, r *http.Request) {
	posts, err := cc.service.BuildContentTree(r.Context())
	if err != nil {
		sendError(w, "Failed to load posts: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// CreatePost handles creating a new post and returns the reloaded tree
func (cc *CommunityController) CreatePost(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	var in contentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := cc.service.CreatePost(r.Context(), auth.User, in.Content)
	if err != nil {
		sendError(w, "Failed to create post: "+err.Error(), statusFor(err))
		return
	}

	// Every mutation re-reads ground truth rather than patching the
	// response together locally.
	posts, err := cc.service.BuildContentTree(r.Context())
	if err != nil {
		sendError(w, "Post created but reload failed: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"post":  post,
		"posts": posts,
	})
}

// CreateComment handles commenting on a post
func (cc *CommunityController) CreateComment(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var in contentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.service.CreateComment(r.Context(), auth.User, postID, in.Content)
	if err != nil {
		sendError(w, "Failed to create comment: "+err.Error(), statusFor(err))
		return
	}

	posts, err := cc.service.BuildContentTree(r.Context())
	if err != nil {
		sendError(w, "Comment created but reload failed: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"comment": comment,
		"posts":   posts,
	})
}

// CreateReply handles replying to a comment
func (cc *CommunityController) CreateReply(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	vars := mux.Vars(r)

	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	commentID, err := strconv.Atoi(vars["commentId"])
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var in contentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := cc.service.CreateReply(r.Context(), auth.User, postID, commentID, in.Content)
	if err != nil {
		sendError(w, "Failed to create reply: "+err.Error(), statusFor(err))
		return
	}

	posts, err := cc.service.BuildContentTree(r.Context())
	if err != nil {
		sendError(w, "Reply created but reload failed: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"reply": reply,
		"posts": posts,
	})
}

// === Web surface ===

type boardReply struct {
	*models.Reply
	Age string
}

type boardComment struct {
	*models.Comment
	Age     string
	Replies []boardReply
}

type boardPost struct {
	*models.Post
	Age        string
	Section    string
	IsOwn      bool
	CanComment bool
	Expanded   bool
	Comments   []boardComment
}

type boardData struct {
	UserName string
	Section  string
	Error    string
	Posts    []boardPost
}

// Board renders the community board for the active section
func (cc *CommunityController) Board(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	v := cc.view(auth)

	if section := r.URL.Query().Get("section"); section != "" {
		v.SetSection(viewstate.ParseSection(section))
	}
	if v.Tree() == nil {
		// First visit; a failed load renders an empty board with the
		// error indicator rather than failing the page.
		_ = v.Reload(r.Context())
	}

	now := time.Now()
	data := boardData{
		UserName: auth.User.Name,
		Section:  v.Section().String(),
		Error:    v.Error(),
	}
	for _, p := range v.Posts() {
		bp := boardPost{
			Post:       p,
			Age:        viewstate.FormatAge(p.CreatedAt, now),
			Section:    data.Section,
			IsOwn:      p.OwnedBy(auth.User.ID),
			CanComment: v.CanComment(p),
			Expanded:   v.CommentsExpanded(p.ID),
		}
		for _, c := range p.Comments {
			bc := boardComment{
				Comment: c,
				Age:     viewstate.FormatAge(c.CreatedAt, now),
			}
			for _, r := range c.Replies {
				bc.Replies = append(bc.Replies, boardReply{
					Reply: r,
					Age:   viewstate.FormatAge(r.CreatedAt, now),
				})
			}
			bp.Comments = append(bp.Comments, bc)
		}
		data.Posts = append(data.Posts, bp)
	}

	if err := cc.templates["board"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// SubmitPost handles the create-post form
func (cc *CommunityController) SubmitPost(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	v := cc.view(auth)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	v.SetPostDraft(r.FormValue("content"))
	if err := v.SubmitPost(r.Context()); err != nil {
		http.Error(w, "Failed to create post: "+err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, "/community?section=yours", http.StatusSeeOther)
}

// SubmitComment handles the comment form under a post
func (cc *CommunityController) SubmitComment(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	v := cc.view(auth)

	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	v.SetCommentDraft(postID, r.FormValue("content"))
	if err := v.SubmitComment(r.Context(), postID); err != nil {
		http.Error(w, "Failed to create comment: "+err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, "/community?section="+r.FormValue("section"), http.StatusSeeOther)
}

// SubmitReply handles the reply form under a comment
func (cc *CommunityController) SubmitReply(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	v := cc.view(auth)
	vars := mux.Vars(r)

	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	commentID, err := strconv.Atoi(vars["commentId"])
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	v.SetReplyDraft(postID, commentID, r.FormValue("content"))
	if err := v.SubmitReply(r.Context(), postID, commentID); err != nil {
		http.Error(w, "Failed to create reply: "+err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, "/community?section="+r.FormValue("section"), http.StatusSeeOther)
}

// ToggleComments flips a post's comment visibility on the board
func (cc *CommunityController) ToggleComments(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())
	v := cc.view(auth)

	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	v.ToggleComments(postID)
	http.Redirect(w, r, "/community?section="+r.URL.Query().Get("section"), http.StatusSeeOther)
}
