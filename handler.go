package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	db            *pgxpool.Pool
	records       recordStore // assessment and plan documents
	openAIBaseURL string      // Base URL for OpenAI API (overridable for tests)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T. Returns an empty, non-nil
// slice when there are no rows so JSON encodes [] rather than null.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool. A pool (not a single conn) survives the
// host closing idle connections.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" errors
	// from server-side prepared statements after schema changes.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)
	router.GET("/api/catalog", h.getCatalog)
	router.GET("/api/experts", h.getExperts)
	router.GET("/api/recipes", h.getRecipes)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/assessment", h.submitAssessment)
	api.GET("/assessment", h.getAssessment)
	api.GET("/nutrition-plan", h.getNutritionPlan)
	api.GET("/nutrition-plan/today", h.getTodayPlan)
	api.POST("/chat", h.chat)
	api.GET("/progress", h.getProgress)
	api.POST("/progress", h.upsertProgressEntry)
	api.GET("/progress/summary", h.getProgressSummary)
	api.DELETE("/progress/:id", h.deleteProgressEntry)
	api.GET("/activities", h.getActivities)
	api.POST("/activities", h.createActivity)
	api.GET("/pantry", h.getPantry)
	api.POST("/pantry", h.createPantryItem)
	api.DELETE("/pantry/:id", h.deletePantryItem)
	api.GET("/consultations", h.getConsultations)
	api.POST("/consultations", h.bookConsultation)
}
