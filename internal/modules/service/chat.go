package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hostforge/hostforge/internal/modules/model"
)

// UnavailableReply is the static degraded answer used when no API key is
// configured. A missing credential is a configuration state, never a fault.
const UnavailableReply = "The HostForge assistant is not configured on this deployment. Ask an administrator to set the Gemini API key."

const defaultChatModel = "gemini-2.0-flash"

// chatBackend is the hosted-model session the relay talks to. Exactly one
// backend session exists per ChatService, created lazily on first send.
type chatBackend interface {
	Send(ctx context.Context, text string) (string, error)
}

// ChatService relays user text to the hosted model and keeps the process-local
// transcript. It is explicitly constructed and explicitly closed; the owner
// ties Close to its own teardown instead of leaning on process lifetime.
type ChatService interface {
	Send(ctx context.Context, text string) (*model.ChatMessage, error)
	Transcript(ctx context.Context) []model.ChatMessage
	Close()
}

type chatService struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	backend  chatBackend
	closed   bool

	dial  func(ctx context.Context) (chatBackend, error)
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// ChatConfig carries the collaborator credential and model selection.
type ChatConfig struct {
	APIKey string
	Model  string
}

func NewChatService(cfg ChatConfig, log *zap.Logger) ChatService {
	if cfg.Model == "" {
		cfg.Model = defaultChatModel
	}
	if log != nil {
		log = log.With(zap.String("component", "chat"))
	}
	s := &chatService{
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if cfg.APIKey != "" {
		s.dial = func(ctx context.Context) (chatBackend, error) {
			return dialGemini(ctx, cfg.APIKey, cfg.Model)
		}
	}
	return s
}

// Send appends the user turn immediately, then asks the collaborator for a
// reply. Collaborator failures are logged and swallowed: the transcript simply
// has no partner message for that turn. The returned message is the model
// reply, or nil when none was produced.
func (s *chatService) Send(ctx context.Context, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrChatClosed
	}
	s.messages = append(s.messages, model.ChatMessage{
		ID:        s.newID(),
		Role:      model.ChatRoleUser,
		Text:      text,
		Timestamp: s.now().UTC(),
	})
	if s.dial == nil {
		// degraded mode: no credential configured
		reply := s.appendModelReplyLocked(UnavailableReply)
		s.mu.Unlock()
		return reply, nil
	}
	backend := s.backend
	s.mu.Unlock()

	if backend == nil {
		created, err := s.dial(ctx)
		if err != nil {
			if s.log != nil {
				s.log.Warn("failed to open assistant session", zap.Error(err))
			}
			return nil, nil
		}
		s.mu.Lock()
		if s.backend == nil {
			s.backend = created
		}
		backend = s.backend
		s.mu.Unlock()
	}

	replyText, err := backend.Send(ctx, text)
	if err != nil {
		if s.log != nil {
			s.log.Warn("assistant call failed", zap.Error(err))
		}
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// the session was torn down while the request was in flight;
		// a late reply must not resurrect discarded state
		if s.log != nil {
			s.log.Debug("discarding assistant reply for closed session")
		}
		return nil, nil
	}
	return s.appendModelReplyLocked(replyText), nil
}

func (s *chatService) appendModelReplyLocked(text string) *model.ChatMessage {
	msg := model.ChatMessage{
		ID:        s.newID(),
		Role:      model.ChatRoleModel,
		Text:      text,
		Timestamp: s.now().UTC(),
	}
	s.messages = append(s.messages, msg)
	return &msg
}

func (s *chatService) Transcript(ctx context.Context) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.messages...)
}

// Close tears the session down. Subsequent sends fail with ErrChatClosed and
// in-flight replies are discarded on arrival.
func (s *chatService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.backend = nil
}

// ---------------------------------------------------------------------------
// Gemini backend
// ---------------------------------------------------------------------------

type geminiBackend struct {
	chat *genai.Chat
}

func dialGemini(ctx context.Context, apiKey, modelName string) (chatBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	chat, err := client.Chats.Create(ctx, modelName, nil, nil)
	if err != nil {
		return nil, err
	}
	return &geminiBackend{chat: chat}, nil
}

func (b *geminiBackend) Send(ctx context.Context, text string) (string, error) {
	res, err := b.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
