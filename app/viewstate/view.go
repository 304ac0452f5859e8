package viewstate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agricare/app/models"
	"agricare/app/services"
)

// View is the community board view controller for one signed-in
// session. It owns the assembled content tree and the section state
// machine, and funnels every mutation through validate -> authorize ->
// write -> full reload. A failed reload keeps the previously displayed
// tree (stale-but-available) and surfaces an error indicator instead
// of clearing the board.
type View struct {
	mu sync.Mutex

	svc  *services.CommunityService
	auth models.AuthState

	section Section
	tree    []*models.Post
	loaded  bool
	loadErr string

	// Per-post comment visibility; reset on every successful reload.
	expanded map[int]bool

	postDraft     string
	commentDrafts map[int]string
	replyDrafts   map[string]string
}

// NewView creates a view for the given session. The initial section is
// Create and nothing is loaded until the first Reload.
func NewView(svc *services.CommunityService, auth models.AuthState) *View {
	return &View{
		svc:           svc,
		auth:          auth,
		section:       SectionCreate,
		expanded:      make(map[int]bool),
		commentDrafts: make(map[int]string),
		replyDrafts:   make(map[string]string),
	}
}

// Auth returns the session's authentication state.
func (v *View) Auth() models.AuthState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.auth
}

// SetAuth replaces the session's authentication state. Long-lived views
// call this on every request so account changes (a renamed user, a
// revoked session) show up without recreating the view.
func (v *View) SetAuth(auth models.AuthState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.auth = auth
}

// Section returns the active section.
func (v *View) Section() Section {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.section
}

// SetSection switches the active panel. Switching sections never
// triggers a reload; the already-assembled tree is re-rendered.
func (v *View) SetSection(s Section) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.section = s
}

// Reload re-assembles the whole content tree. On failure the previous
// tree stays in place and Error reports the problem.
func (v *View) Reload(ctx context.Context) error {
	tree, err := v.svc.BuildContentTree(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.loadErr = "could not refresh posts"
		return err
	}
	v.tree = tree
	v.loaded = true
	v.loadErr = ""
	v.expanded = make(map[int]bool)
	return nil
}

// Posts returns the posts to render for the active section: the
// session user's own posts for YourPosts, everyone else's for Others,
// and nothing for the Create panel.
func (v *View) Posts() []*models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.section == SectionCreate || v.auth.Status != models.AuthSignedIn {
		return nil
	}

	own := v.section == SectionYourPosts
	uid := v.auth.User.ID
	var out []*models.Post
	for _, p := range v.tree {
		if p.OwnedBy(uid) == own {
			out = append(out, p)
		}
	}
	return out
}

// Tree returns the full assembled tree regardless of section.
func (v *View) Tree() []*models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree
}

// Error returns the transient load-error indicator, empty when the
// last reload succeeded.
func (v *View) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

// CanComment reports whether the session user may comment on a post.
func (v *View) CanComment(post *models.Post) bool {
	v.mu.Lock()
	auth := v.auth
	v.mu.Unlock()

	if auth.Status != models.AuthSignedIn {
		return false
	}
	return services.CanComment(post, auth.User.ID)
}

// ToggleComments flips a post's comment visibility.
func (v *View) ToggleComments(postID int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expanded[postID] = !v.expanded[postID]
}

// CommentsExpanded reports whether a post's comments are shown.
func (v *View) CommentsExpanded(postID int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded[postID]
}

// SetPostDraft stores the create-post textbox content.
func (v *View) SetPostDraft(content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.postDraft = content
}

// SetCommentDraft stores the comment textbox content for a post.
func (v *View) SetCommentDraft(postID int, content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.commentDrafts[postID] = content
}

// SetReplyDraft stores the reply textbox content for a comment.
func (v *View) SetReplyDraft(postID, commentID int, content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.replyDrafts[replyKey(postID, commentID)] = content
}

// SubmitPost submits the post draft. An empty draft is a silent no-op;
// nothing reaches the repository. On success the draft is cleared and
// the tree reloaded.
func (v *View) SubmitPost(ctx context.Context) error {
	v.mu.Lock()
	draft := strings.TrimSpace(v.postDraft)
	auth := v.auth
	v.mu.Unlock()

	if draft == "" || auth.Status != models.AuthSignedIn {
		return nil
	}

	if _, err := v.svc.CreatePost(ctx, auth.User, draft); err != nil {
		return err
	}

	v.mu.Lock()
	v.postDraft = ""
	v.mu.Unlock()
	return v.Reload(ctx)
}

// SubmitComment submits the comment draft for a post. Empty drafts are
// silent no-ops; commenting on one's own post is rejected by the
// service's write path.
func (v *View) SubmitComment(ctx context.Context, postID int) error {
	v.mu.Lock()
	draft := strings.TrimSpace(v.commentDrafts[postID])
	auth := v.auth
	v.mu.Unlock()

	if draft == "" || auth.Status != models.AuthSignedIn {
		return nil
	}

	if _, err := v.svc.CreateComment(ctx, auth.User, postID, draft); err != nil {
		return err
	}

	v.mu.Lock()
	delete(v.commentDrafts, postID)
	v.mu.Unlock()
	return v.Reload(ctx)
}

// SubmitReply submits the reply draft for a comment.
func (v *View) SubmitReply(ctx context.Context, postID, commentID int) error {
	key := replyKey(postID, commentID)

	v.mu.Lock()
	draft := strings.TrimSpace(v.replyDrafts[key])
	auth := v.auth
	v.mu.Unlock()

	if draft == "" || auth.Status != models.AuthSignedIn {
		return nil
	}

	if _, err := v.svc.CreateReply(ctx, auth.User, postID, commentID, draft); err != nil {
		return err
	}

	v.mu.Lock()
	delete(v.replyDrafts, key)
	v.mu.Unlock()
	return v.Reload(ctx)
}

func replyKey(postID, commentID int) string {
	return fmt.Sprintf("%d-%d", postID, commentID)
}
