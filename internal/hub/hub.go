package hub

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/achievements"
	"github.com/trixieverse/coach-backend/internal/coach"
	"github.com/trixieverse/coach-backend/internal/dispatch"
	"github.com/trixieverse/coach-backend/internal/metrics"
	"github.com/trixieverse/coach-backend/internal/registry"
	"github.com/trixieverse/coach-backend/internal/session"
	"github.com/trixieverse/coach-backend/internal/store"
	"github.com/trixieverse/coach-backend/internal/summary"
	"github.com/trixieverse/coach-backend/internal/types"
)

type HubMsg interface{ isHubMsg() }

type Authenticate struct {
	UserID string
	ConnID string
	Outbox chan<- types.ServerMessage
}

type MatchStart struct {
	UserID          string
	PlayerAccountID string
}

type MatchEvent struct {
	UserID  string
	Kind    session.EventKind
	Payload json.RawMessage
}

type MatchEnd struct {
	UserID    string
	MatchData *coach.MatchContext
}

type Disconnect struct{ ConnID string }

// Notify is the ad hoc notification path (achievement unlocks, admin
// pushes). Delivered, when non-nil, receives whether the message reached a
// live connection; the channel must be buffered.
type Notify struct {
	UserID    string
	Payload   json.RawMessage
	Delivered chan<- bool
}

type BroadcastNotice struct{ Payload json.RawMessage }

type IsOnline struct {
	UserID string
	Reply  chan bool
}

// Stats is a race-free view of the hub's maps for tests and the HTTP API.
type Stats struct {
	Online         int
	ActiveSessions int
}

type GetStats struct{ Reply chan Stats }

type Shutdown struct{}

// summaryFetched reenters the loop once an external summary lookup
// finishes, so the fetch never blocks event dispatch.
type summaryFetched struct {
	sess *session.MatchSession
	mc   coach.MatchContext
}

func (Authenticate) isHubMsg()    {}
func (MatchStart) isHubMsg()      {}
func (MatchEvent) isHubMsg()      {}
func (MatchEnd) isHubMsg()        {}
func (Disconnect) isHubMsg()      {}
func (Notify) isHubMsg()          {}
func (BroadcastNotice) isHubMsg() {}
func (IsOnline) isHubMsg()        {}
func (GetStats) isHubMsg()        {}
func (Shutdown) isHubMsg()        {}
func (summaryFetched) isHubMsg()  {}

type Options struct {
	Log     *zap.Logger
	Store   *store.Store     // nil: analyses stay ephemeral
	Summary summary.Provider // nil: analyze from recorded events only

	// SessionTTL bounds how long an abandoned session may linger; 0
	// disables the sweep and sessions survive until an explicit match:end.
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type Hub struct {
	inbox      chan HubMsg
	reg        *registry.Registry
	tracker    *session.Tracker
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger
	st         *store.Store
	summary    summary.Provider
	sessionTTL time.Duration
	sweepEvery time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
}

func New(parent context.Context, opts Options) *Hub {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(parent)
	reg := registry.New()
	h := &Hub{
		inbox:      make(chan HubMsg, 64),
		reg:        reg,
		tracker:    session.NewTracker(),
		dispatcher: dispatch.New(reg, opts.Log.Named("dispatch")),
		log:        opts.Log,
		st:         opts.Store,
		summary:    opts.Summary,
		sessionTTL: opts.SessionTTL,
		sweepEvery: opts.SweepInterval,
		ctx:        ctx,
		cancel:     cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	var sweep <-chan time.Time
	if h.sessionTTL > 0 {
		t := time.NewTicker(h.sweepEvery)
		defer t.Stop()
		sweep = t.C
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case <-sweep:
			if n := h.tracker.Sweep(h.sessionTTL); n > 0 {
				h.log.Info("swept abandoned match sessions", zap.Int("removed", n))
				metrics.SessionsActive.Set(float64(h.tracker.Len()))
			}

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Authenticate:
				h.reg.Register(msg.UserID, registry.Client{ConnID: msg.ConnID, Outbox: msg.Outbox})
				metrics.ConnectionsActive.Set(float64(h.reg.Count()))
				h.log.Info("user authenticated",
					zap.String("user_id", msg.UserID),
					zap.String("conn_id", msg.ConnID))
				h.dispatcher.SendToUser(msg.UserID, types.ServerMessage{
					Type:    types.MsgAuthenticated,
					Success: true,
				})

			case MatchStart:
				h.tracker.Start(msg.UserID, msg.PlayerAccountID)
				metrics.SessionsActive.Set(float64(h.tracker.Len()))
				h.dispatcher.SendToUser(msg.UserID, types.ServerMessage{
					Type:    types.MsgCoach,
					Kind:    types.CoachMatchStart,
					Message: coach.Greeting,
				})

			case MatchEvent:
				// No session means a missed match:start; drop quietly.
				if !h.tracker.Record(msg.UserID, msg.Kind, msg.Payload) {
					break
				}
				h.dispatcher.SendToUser(msg.UserID, types.ServerMessage{
					Type:      types.MsgCoach,
					Kind:      types.CoachMatchEvent,
					EventType: string(msg.Kind),
					Message:   coach.ReactionFor(msg.Kind),
				})

			case MatchEnd:
				sess := h.tracker.End(msg.UserID)
				if sess == nil {
					break
				}
				metrics.SessionsActive.Set(float64(h.tracker.Len()))
				switch {
				case msg.MatchData != nil:
					h.finishMatch(sess, *msg.MatchData)
				case h.summary != nil:
					go h.fetchSummary(sess)
				default:
					h.finishMatch(sess, coach.MatchContext{})
				}

			case summaryFetched:
				h.finishMatch(msg.sess, msg.mc)

			case Disconnect:
				if userID, removed := h.reg.Unregister(msg.ConnID); removed {
					metrics.ConnectionsActive.Set(float64(h.reg.Count()))
					h.log.Info("user disconnected", zap.String("user_id", userID))
				}

			case Notify:
				ok := h.dispatcher.SendToUser(msg.UserID, types.ServerMessage{
					Type:    types.MsgNotification,
					Payload: msg.Payload,
				})
				if msg.Delivered != nil {
					msg.Delivered <- ok
				}

			case BroadcastNotice:
				h.dispatcher.Broadcast(types.ServerMessage{
					Type:    types.MsgNotification,
					Payload: msg.Payload,
				})

			case IsOnline:
				_, ok := h.reg.Lookup(msg.UserID)
				msg.Reply <- ok

			case GetStats:
				msg.Reply <- Stats{
					Online:         h.reg.Count(),
					ActiveSessions: h.tracker.Len(),
				}

			case Shutdown:
				h.cancel()
				return
			}
		}
	}
}

// fetchSummary runs off-loop so a slow provider cannot stall other users'
// events. Errors degrade to an event-only analysis.
func (h *Hub) fetchSummary(sess *session.MatchSession) {
	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()

	mc, err := h.summary.LatestMatch(ctx, sess.PlayerAccountID)
	if err != nil {
		h.log.Warn("match summary fetch failed, using recorded events only",
			zap.String("user_id", sess.UserID),
			zap.Error(err))
		mc = coach.MatchContext{}
	}

	select {
	case h.inbox <- summaryFetched{sess: sess, mc: mc}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) finishMatch(sess *session.MatchSession, mc coach.MatchContext) {
	analysis := coach.Analyze(sess, mc)
	metrics.AnalysesTotal.Inc()

	h.dispatcher.SendToUser(sess.UserID, types.ServerMessage{
		Type:     types.MsgCoach,
		Kind:     types.CoachMatchEnd,
		Message:  analysis.CoachReaction,
		Analysis: &analysis,
	})

	if h.st != nil {
		go h.persistAndAward(sess, analysis)
	}
}

// persistAndAward writes the match row and hands out any newly earned
// achievements. It runs off-loop; unlock notifications reenter through the
// inbox so registry access stays on the hub goroutine.
func (h *Hub) persistAndAward(sess *session.MatchSession, analysis coach.Analysis) {
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	m := &store.Match{
		UserID:           sess.UserID,
		PlayerAccountID:  sess.PlayerAccountID,
		Result:           analysis.Result,
		ChampionName:     analysis.ChampionName,
		Kills:            analysis.Kills,
		Deaths:           analysis.Deaths,
		Assists:          analysis.Assists,
		Objectives:       analysis.Objectives,
		PerformanceScore: analysis.PerformanceScore,
		DurationSeconds:  analysis.DurationSeconds,
		MatchTimestamp:   sess.StartedAt,
	}
	if err := h.st.SaveMatch(ctx, m); err != nil {
		h.log.Error("failed to save match", zap.String("user_id", sess.UserID), zap.Error(err))
		return
	}

	stats, err := h.st.PlayerStats(ctx, sess.UserID)
	if err != nil {
		h.log.Error("failed to load player stats", zap.String("user_id", sess.UserID), zap.Error(err))
		return
	}

	for _, def := range achievements.Earned(stats) {
		created, err := h.st.AwardAchievement(ctx, &store.Achievement{
			UserID:          sess.UserID,
			AchievementType: def.Type,
			Title:           def.Title,
			Description:     def.Description,
			Rarity:          def.Rarity,
			IconURL:         def.Icon,
		})
		if err != nil {
			h.log.Error("failed to award achievement",
				zap.String("user_id", sess.UserID),
				zap.String("achievement", def.Type),
				zap.Error(err))
			continue
		}
		if !created {
			continue
		}

		h.log.Info("achievement unlocked",
			zap.String("user_id", sess.UserID),
			zap.String("achievement", def.Type))
		payload, _ := json.Marshal(map[string]string{
			"event":       "achievement_unlocked",
			"type":        def.Type,
			"title":       def.Title,
			"description": def.Description,
			"rarity":      def.Rarity,
			"icon":        def.Icon,
		})
		select {
		case h.inbox <- Notify{UserID: sess.UserID, Payload: payload}:
		case <-h.ctx.Done():
			return
		}
	}
}
