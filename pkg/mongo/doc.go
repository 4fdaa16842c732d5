// Package mongo connects to the comment platform's MongoDB, where comments,
// users and assets live. comments.MongoStore reads from the database handle
// returned here.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	db, err := mongo.Database(client, cfg)
//	store := comments.NewMongoStore(db)
package mongo
