package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"vistonomade/internal/checklist"
	"vistonomade/internal/payments"
	"vistonomade/internal/quiz"
	"vistonomade/internal/rates"
	"vistonomade/internal/storage"
	"vistonomade/internal/store"
	"vistonomade/internal/syncer"
	"vistonomade/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	leadRepo      *store.LeadRepository
	checklistRepo *store.ChecklistRepository
	guideRepo     *store.GuideRepository
	memberRepo    *store.MemberRepository

	cognitoClient *cognitoidentityprovider.Client
	proofs        *storage.ProofStorage
	payments      *payments.Service
	ratesPoller   *rates.Poller
	tasks         *syncer.Syncer

	cookie *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string

	// Per-process session/board state. Each quiz run and each user's board
	// is independent; a restart simply starts fresh (the checklist restores
	// from its persisted copy on first access).
	mu       sync.Mutex
	sessions map[string]*quiz.Session
	boards   map[string]*checklist.Board

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	leadRepo *store.LeadRepository,
	checklistRepo *store.ChecklistRepository,
	guideRepo *store.GuideRepository,
	memberRepo *store.MemberRepository,
	proofs *storage.ProofStorage,
	paymentsService *payments.Service,
	ratesPoller *rates.Poller,
	tasks *syncer.Syncer,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,

		leadRepo:      leadRepo,
		checklistRepo: checklistRepo,
		guideRepo:     guideRepo,
		memberRepo:    memberRepo,

		proofs:      proofs,
		payments:    paymentsService,
		ratesPoller: ratesPoller,
		tasks:       tasks,

		cookie: securecookie.New(hashKey, blockKey),

		jwksCache: jwkCache,
		jwksURL:   jwksURL,

		sessions: make(map[string]*quiz.Session),
		boards:   make(map[string]*checklist.Board),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// Public funnel: quiz sessions exist before any account does.
	r.HandleFunc("/api/quiz/questions", s.handleQuizQuestions, http.MethodGet)
	r.HandleFunc("/api/quiz/sessions", s.handleCreateQuizSession, http.MethodPost)
	r.HandleFunc("/api/quiz/sessions/:id", s.handleGetQuizSession, http.MethodGet)
	r.HandleFunc("/api/quiz/sessions/:id/begin", s.handleQuizBegin, http.MethodPost)
	r.HandleFunc("/api/quiz/sessions/:id/lead", s.handleQuizLead, http.MethodPost)
	r.HandleFunc("/api/quiz/sessions/:id/answer", s.handleQuizAnswer, http.MethodPost)
	r.HandleFunc("/api/quiz/sessions/:id/back", s.handleQuizBack, http.MethodPost)
	r.HandleFunc("/api/quiz/sessions/:id/result", s.handleQuizResult, http.MethodGet)

	r.HandleFunc("/api/rates/:pair", s.handleRate, http.MethodGet)

	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)

	r.HandleFunc("/webhooks/stripe", s.handleStripeWebhook, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/checklist", s.handleGetChecklist, http.MethodGet)
		r.HandleFunc("/api/checklist/items", s.handleAddPersonalItem, http.MethodPost)
		r.HandleFunc("/api/checklist/items/:id/toggle", s.handleToggleItem, http.MethodPost)
		r.HandleFunc("/api/checklist/items/:id", s.handleDeleteItem, http.MethodDelete)
		r.HandleFunc("/api/checklist/items/:id/proof", s.handleUploadProof, http.MethodPost)

		r.HandleFunc("/api/guides", s.handleListGuides, http.MethodGet)
		r.HandleFunc("/api/guides/:slug", s.handleGetGuide, http.MethodGet)

		r.HandleFunc("/api/billing/checkout", s.handleCreateCheckout, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireAdmin)

		r.HandleFunc("/api/admin/guides", s.handleAdminListGuides, http.MethodGet)
		r.HandleFunc("/api/admin/guides", s.handleAdminCreateGuide, http.MethodPost)
		r.HandleFunc("/api/admin/guides/:id", s.handleAdminUpdateGuide, http.MethodPut)
		r.HandleFunc("/api/admin/guides/:id", s.handleAdminDeleteGuide, http.MethodDelete)
	})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
