package repositories

import (
	"context"
	"fmt"
	"testing"

	"agricare/app/models"

	"github.com/stretchr/testify/assert"
)

func TestCommentRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	post := &models.Post{Content: "Post", AuthorID: 1, AuthorName: "Ravi"}
	assert.NoError(t, store.Posts().Create(ctx, post))

	t.Run("create and list by post", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			comment := &models.Comment{
				PostID:     post.ID,
				Content:    fmt.Sprintf("Comment %d", i),
				AuthorID:   2,
				AuthorName: "Meena",
			}
			err := store.Comments().Create(ctx, comment)
			assert.NoError(t, err)
			assert.Greater(t, comment.ID, 0)
			assert.False(t, comment.CreatedAt.IsZero())
		}

		comments, err := store.Comments().ListByPost(ctx, post.ID)
		assert.NoError(t, err)
		assert.Len(t, comments, 3)
		assert.Equal(t, "Comment 0", comments[0].Content)
		assert.Equal(t, "Comment 2", comments[2].Content)
	})

	t.Run("comments are scoped to their post", func(t *testing.T) {
		other := &models.Post{Content: "Other post", AuthorID: 3, AuthorName: "Suresh"}
		assert.NoError(t, store.Posts().Create(ctx, other))

		comment := &models.Comment{
			PostID:     other.ID,
			Content:    "On the other post",
			AuthorID:   2,
			AuthorName: "Meena",
		}
		assert.NoError(t, store.Comments().Create(ctx, comment))

		comments, err := store.Comments().ListByPost(ctx, other.ID)
		assert.NoError(t, err)
		assert.Len(t, comments, 1)
		assert.Equal(t, "On the other post", comments[0].Content)
	})

	t.Run("empty post has no comments", func(t *testing.T) {
		empty := &models.Post{Content: "Quiet post", AuthorID: 1, AuthorName: "Ravi"}
		assert.NoError(t, store.Posts().Create(ctx, empty))

		comments, err := store.Comments().ListByPost(ctx, empty.ID)
		assert.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestReplyRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	post := &models.Post{Content: "Post", AuthorID: 1, AuthorName: "Ravi"}
	assert.NoError(t, store.Posts().Create(ctx, post))
	comment := &models.Comment{PostID: post.ID, Content: "Comment", AuthorID: 2, AuthorName: "Meena"}
	assert.NoError(t, store.Comments().Create(ctx, comment))

	t.Run("create and list by comment", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			reply := &models.Reply{
				PostID:     post.ID,
				CommentID:  comment.ID,
				Content:    fmt.Sprintf("Reply %d", i),
				AuthorID:   1,
				AuthorName: "Ravi",
			}
			err := store.Replies().Create(ctx, reply)
			assert.NoError(t, err)
			assert.Greater(t, reply.ID, 0)
		}

		replies, err := store.Replies().ListByComment(ctx, post.ID, comment.ID)
		assert.NoError(t, err)
		assert.Len(t, replies, 2)
		assert.Equal(t, "Reply 0", replies[0].Content)
	})

	t.Run("replies are scoped to their comment", func(t *testing.T) {
		other := &models.Comment{PostID: post.ID, Content: "Second comment", AuthorID: 2, AuthorName: "Meena"}
		assert.NoError(t, store.Comments().Create(ctx, other))

		replies, err := store.Replies().ListByComment(ctx, post.ID, other.ID)
		assert.NoError(t, err)
		assert.Empty(t, replies)
	})
}
