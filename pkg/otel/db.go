package otel

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// 数据库类型，对应 db.system 属性
const (
	DBPostgres = "postgresql"
	DBSQLite   = "sqlite"
)

// DBSpan 为数据库操作创建 span
func DBSpan(ctx context.Context, system, operation, query string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemKey.String(system),
			semconv.DBOperationKey.String(operation),
			attribute.String("db.statement", query),
		),
	)
}

// WrapDBError 记录数据库错误到 span，无结果不算错误
func WrapDBError(span trace.Span, err error) {
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows):
		span.SetStatus(codes.Ok, "no rows")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// Query 包装一次数据库调用，自动添加追踪
func Query(ctx context.Context, system, operation, query string, fn func(context.Context) error) error {
	ctx, span := DBSpan(ctx, system, operation, query)
	defer span.End()

	err := fn(ctx)
	WrapDBError(span, err)
	return err
}
