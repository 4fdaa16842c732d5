// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New builds a *slog.Logger from Option values: output format (text or json),
// minimum level, static attributes and ContextExtractor callbacks. The
// concrete handler is wrapped in LogHandlerDecorator, which runs the
// extractors on every record before delegating.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "notifier"),
//	    logger.WithContextValue("dispatch_id", dispatchKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "notification sent",
//	    logger.UserID(userID),
//	    logger.Category("featured"),
//	    logger.TaskID(taskID),
//	)
//
// # Attributes
//
// Helpers in attr.go keep attribute keys consistent across packages. Error
// and Errors return an empty Attr for nil input, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check.
package logger
