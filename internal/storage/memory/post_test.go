package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/models"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	storage := NewPostMemoryStorage(NewDatabase())

	t.Run("Success post creation", func(t *testing.T) {
		ctx := createUserContext(1)

		p, err := storage.CreatePost(ctx, "Test post", "Test content", "tech")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Test post", p.Title)
		assert.Equal(t, "1", p.AuthorID)
		assert.Equal(t, models.DefaultPostStatus, p.Status)

		fromStorage, err := storage.GetPostById(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, fromStorage.ID)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		_, err := storage.CreatePost(context.Background(), "title", "content", "tech")
		require.Error(t, err)
		assert.True(t, apperror.IsType(err, apperror.AuthError))
	})
}

func TestPostMemoryStorage_ToggleUpvote(t *testing.T) {
	storage := NewPostMemoryStorage(NewDatabase())
	ctx := createUserContext(1)

	p, err := storage.CreatePost(ctx, "Post", "Content", "tech")
	require.NoError(t, err)

	t.Run("Toggle pair returns post to original state", func(t *testing.T) {
		voter := createUserContext(2)

		after, err := storage.ToggleUpvote(voter, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.UpVotes)

		after, err = storage.ToggleUpvote(voter, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, after.UpVotes)
	})

	t.Run("Votes of different users are independent", func(t *testing.T) {
		_, err := storage.ToggleUpvote(createUserContext(2), p.ID)
		require.NoError(t, err)
		after, err := storage.ToggleUpvote(createUserContext(3), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, after.UpVotes)

		ids, err := storage.UpvoterIds(p.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "3"}, ids)
	})

	t.Run("NotFound for missing post", func(t *testing.T) {
		_, err := storage.ToggleUpvote(ctx, "9999")
		assert.True(t, apperror.IsType(err, apperror.NotFoundError))
	})
}

func TestPostMemoryStorage_DeletePostCascade(t *testing.T) {
	db := NewDatabase()
	storage := NewPostMemoryStorage(db)
	comments := NewCommentMemoryStorage(db)
	replies := NewReplyMemoryStorage(db)

	author := createUserContext(1)
	stranger := createUserContext(2)

	p, err := storage.CreatePost(author, "Post", "Content", "tech")
	require.NoError(t, err)
	c1, err := comments.CreateComment(author, p.ID, "c1")
	require.NoError(t, err)
	c2, err := comments.CreateComment(stranger, p.ID, "c2")
	require.NoError(t, err)
	_, err = replies.CreateReply(stranger, c1.ID, "r1")
	require.NoError(t, err)
	_, err = replies.CreateReply(author, c2.ID, "r2")
	require.NoError(t, err)

	t.Run("Error when deleting by non-author", func(t *testing.T) {
		_, err := storage.DeletePostCascade(stranger, p.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsType(err, apperror.UnauthorizedError))
	})

	t.Run("Author deletes everything at once", func(t *testing.T) {
		snapshot, err := storage.DeletePostCascade(author, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, snapshot.ID)

		_, err = storage.GetPostById(p.ID)
		assert.True(t, apperror.IsType(err, apperror.NotFoundError))

		_, err = comments.GetCommentById(c1.ID)
		assert.True(t, apperror.IsType(err, apperror.NotFoundError))

		rs, err := replies.GetReplies(c1.ID)
		require.NoError(t, err)
		assert.Empty(t, rs)
		rs, err = replies.GetReplies(c2.ID)
		require.NoError(t, err)
		assert.Empty(t, rs)
	})
}

func TestPostMemoryStorage_ListPosts(t *testing.T) {
	db := NewDatabase()
	storage := NewPostMemoryStorage(db)
	comments := NewCommentMemoryStorage(db)
	ctx := createUserContext(1)

	p1, err := storage.CreatePost(ctx, "first", "", "tech")
	require.NoError(t, err)
	p2, err := storage.CreatePost(ctx, "second", "", "tech")
	require.NoError(t, err)
	p3, err := storage.CreatePost(ctx, "third", "", "life")
	require.NoError(t, err)

	// голоса: p2=2, p1=1
	_, err = storage.ToggleUpvote(createUserContext(2), p2.ID)
	require.NoError(t, err)
	_, err = storage.ToggleUpvote(createUserContext(3), p2.ID)
	require.NoError(t, err)
	_, err = storage.ToggleUpvote(createUserContext(2), p1.ID)
	require.NoError(t, err)

	// комментарии: p3=1
	_, err = comments.CreateComment(ctx, p3.ID, "c")
	require.NoError(t, err)

	t.Run("Filter by category", func(t *testing.T) {
		posts, err := storage.ListPosts("tech", post.SortDateDesc)
		require.NoError(t, err)
		require.Len(t, posts, 2)
	})

	t.Run("Sort by upvotes", func(t *testing.T) {
		posts, err := storage.ListPosts("", post.SortUpVotesDesc)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "second", posts[0].Title)
		assert.Equal(t, "first", posts[1].Title)
	})

	t.Run("Sort by comment count", func(t *testing.T) {
		posts, err := storage.ListPosts("", post.SortCommentCountDesc)
		require.NoError(t, err)
		assert.Equal(t, "third", posts[0].Title)
	})

	t.Run("Unknown key falls back to dateDesc", func(t *testing.T) {
		posts, err := storage.ListPosts("", "bogus")
		require.NoError(t, err)
		require.Len(t, posts, 3)
		// по умолчанию dateDesc: созданный последним — первый
		assert.Equal(t, p3.ID, posts[0].ID)
	})

	t.Run("ListPostsByUser and status", func(t *testing.T) {
		posts, err := storage.ListPostsByUser("1")
		require.NoError(t, err)
		assert.Len(t, posts, 3)

		status := "published"
		_, err = storage.UpdatePost(ctx, p1.ID, post.UpdatePostInput{Status: &status})
		require.NoError(t, err)

		published, err := storage.ListPostsByStatus("published")
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, p1.ID, published[0].ID)
	})

	t.Run("ListUpvotedPostsByUser", func(t *testing.T) {
		posts, err := storage.ListUpvotedPostsByUser("3")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, p2.ID, posts[0].ID)
	})

	t.Run("CountPosts", func(t *testing.T) {
		count, err := storage.CountPosts()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
