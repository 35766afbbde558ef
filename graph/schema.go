package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/post"
)

// NewSchema собирает GraphQL-схему поверх резолвера.
// Типы объявляются через thunk-и: User <-> Post ссылаются друг на друга.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var userType, postType, commentType, replyType *graphql.Object

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":         &graphql.Field{Type: graphql.ID},
				"email":      &graphql.Field{Type: graphql.String},
				"firstname":  &graphql.Field{Type: graphql.String},
				"lastname":   &graphql.Field{Type: graphql.String},
				"profileImg": &graphql.Field{Type: graphql.String},
				"createdAt":  &graphql.Field{Type: graphql.String},
				"updatedAt":  &graphql.Field{Type: graphql.String},
				"userPosts": &graphql.Field{
					Type: graphql.NewList(postType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.UserPosts(p.Context, p.Source.(*model.User))
					},
				},
				"upVotedPosts": &graphql.Field{
					Type: graphql.NewList(postType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.UpvotedPosts(p.Context, p.Source.(*model.User))
					},
				},
			}
		}),
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.ID},
				"title":       &graphql.Field{Type: graphql.String},
				"description": &graphql.Field{Type: graphql.String},
				"category":    &graphql.Field{Type: graphql.String},
				"status":      &graphql.Field{Type: graphql.String},
				"upVotes":     &graphql.Field{Type: graphql.Int},
				"authorId":    &graphql.Field{Type: graphql.ID},
				"createdAt":   &graphql.Field{Type: graphql.String},
				"updatedAt":   &graphql.Field{Type: graphql.String},
				"author": &graphql.Field{
					Type: userType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.PostAuthor(p.Context, p.Source.(*model.Post))
					},
				},
				"comments": &graphql.Field{
					Type: graphql.NewList(commentType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.PostComments(p.Context, p.Source.(*model.Post))
					},
				},
				"commentCount": &graphql.Field{
					Type: graphql.Int,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.PostCommentCount(p.Context, p.Source.(*model.Post))
					},
				},
				"userUpVoteList": &graphql.Field{
					Type: graphql.NewList(userType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.PostUpvoterList(p.Context, p.Source.(*model.Post))
					},
				},
			}
		}),
	})

	commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: graphql.ID},
				"content":   &graphql.Field{Type: graphql.String},
				"authorId":  &graphql.Field{Type: graphql.ID},
				"postId":    &graphql.Field{Type: graphql.ID},
				"createdAt": &graphql.Field{Type: graphql.String},
				"updatedAt": &graphql.Field{Type: graphql.String},
				"author": &graphql.Field{
					Type: userType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.CommentAuthor(p.Context, p.Source.(*model.Comment))
					},
				},
				"post": &graphql.Field{
					Type: postType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.CommentPost(p.Context, p.Source.(*model.Comment))
					},
				},
				"replies": &graphql.Field{
					Type: graphql.NewList(replyType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.CommentReplies(p.Context, p.Source.(*model.Comment))
					},
				},
			}
		}),
	})

	replyType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Reply",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: graphql.ID},
				"content":   &graphql.Field{Type: graphql.String},
				"authorId":  &graphql.Field{Type: graphql.ID},
				"commentId": &graphql.Field{Type: graphql.ID},
				"createdAt": &graphql.Field{Type: graphql.String},
				"updatedAt": &graphql.Field{Type: graphql.String},
				"author": &graphql.Field{
					Type: userType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.ReplyAuthor(p.Context, p.Source.(*model.Reply))
					},
				},
				"comment": &graphql.Field{
					Type: commentType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return r.ReplyComment(p.Context, p.Source.(*model.Reply))
					},
				},
			}
		}),
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"currentUser": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CurrentUser(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.User(p.Context, stringArg(p, "userId"))
				},
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Post(p.Context, stringArg(p, "postId"))
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Posts(p.Context)
				},
			},
			"filteredPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: graphql.String},
					"sort":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.FilteredPosts(p.Context, stringArg(p, "filter"), stringArg(p, "sort"))
				},
			},
			"postsByStatus": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.PostsByStatus(p.Context, stringArg(p, "status"))
				},
			},
			"postCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.PostCount(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"category":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.AddPost(p.Context, stringArg(p, "title"), stringArg(p, "description"), stringArg(p, "category"))
				},
			},
			"updatePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"category":    &graphql.ArgumentConfig{Type: graphql.String},
					"status":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := post.UpdatePostInput{
						Title:       stringArgPtr(p, "title"),
						Description: stringArgPtr(p, "description"),
						Category:    stringArgPtr(p, "category"),
						Status:      stringArgPtr(p, "status"),
					}
					return r.UpdatePost(p.Context, stringArg(p, "postId"), input)
				},
			},
			"deletePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeletePost(p.Context, stringArg(p, "postId"))
				},
			},
			"toggleUpVote": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.ToggleUpVote(p.Context, stringArg(p, "postId"))
				},
			},
			"addComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.AddComment(p.Context, stringArg(p, "postId"), stringArg(p, "content"))
				},
			},
			"addReply": &graphql.Field{
				Type: replyType,
				Args: graphql.FieldConfigArgument{
					"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.AddReply(p.Context, stringArg(p, "commentId"), stringArg(p, "content"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, ok := p.Args[name].(string)
	if !ok {
		return ""
	}
	return v
}

// stringArgPtr — nil, если аргумент не передан (поле не обновляем)
func stringArgPtr(p graphql.ResolveParams, name string) *string {
	v, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &v
}
