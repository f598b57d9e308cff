package repository

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/model"
)

// TodoRepository defines the interface for todo-related database operations.
type TodoRepository interface {
	ListTodosByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*model.Todo, error)
}

const todoCollection = "todos"

type todoMongoRepository struct {
	db *mongo.Database
}

func NewTodoMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TodoRepository {
	collection := db.Collection(todoCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create todo indexes")
	}

	return &todoMongoRepository{db: db}
}

// ListTodosByOwner returns every todo whose owner is ownerID, in store
// order. The result is never nil.
func (r *todoMongoRepository) ListTodosByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*model.Todo, error) {
	cursor, err := r.db.Collection(todoCollection).Find(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	todos := make([]*model.Todo, 0)
	for cursor.Next(ctx) {
		var todo model.Todo
		if err := cursor.Decode(&todo); err != nil {
			return nil, err
		}
		todos = append(todos, &todo)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}
