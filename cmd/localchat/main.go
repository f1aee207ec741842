package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/XZCh722aris/localchat/internal/config"
	"github.com/XZCh722aris/localchat/internal/logging"
	"github.com/XZCh722aris/localchat/internal/media"
	"github.com/XZCh722aris/localchat/internal/metrics"
	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/notify"
	"github.com/XZCh722aris/localchat/internal/poll"
	"github.com/XZCh722aris/localchat/internal/store"
	"github.com/XZCh722aris/localchat/internal/store/sqlstore"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	driver := flag.String("driver", cfg.DBDriver, "database driver (sqlite3 or postgres)")
	dsn := flag.String("db", cfg.DBDSN, "database data source name")
	username := flag.String("user", "", "username to log in as")
	secret := flag.String("secret", "", "password")
	telephone := flag.String("telephone", "", "telephone number (enables registration for a new username)")
	peer := flag.String("peer", "", "open a direct conversation with this username")
	groupID := flag.Int("group", 0, "open a group conversation by id")
	avatar := flag.String("avatar", "", "set profile picture from this image file and exit")
	interval := flag.Duration("interval", cfg.TickInterval, "poll tick interval")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "prometheus listen address (empty disables)")
	flag.Parse()

	logging.Init(cfg.Env)

	if *username == "" || *secret == "" {
		log.Fatal().Msg("-user and -secret are required")
	}

	st, err := sqlstore.New(*driver, *dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewerID, err := login(ctx, st, *username, *secret, *telephone)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	log.Info().Str("username", *username).Int("user_id", viewerID).Msg("logged in")

	storage := media.NewStorage(cfg.MediaDir)
	if *avatar != "" {
		path, err := storage.SaveProfilePicture(viewerID, *avatar)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to store profile picture")
		}
		if err := st.SetProfilePicture(ctx, viewerID, path); err != nil {
			log.Fatal().Err(err).Msg("failed to set profile picture")
		}
		log.Info().Str("path", path).Msg("profile picture updated")
		return
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	emitter := notify.NewEmitter(log.Logger)
	emitter.OnMessages = printHistory

	sched := poll.NewScheduler(*interval, log.Logger)
	engine := poll.NewEngine(st, sched, emitter, viewerID)
	defer engine.CloseAll()

	conv, err := resolveConversation(ctx, st, *peer, *groupID)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open conversation")
	}
	if !conv.IsZero() {
		engine.OpenConversation(conv)
		log.Info().Stringer("conversation", conv).Msg("conversation opened")
	}

	go sched.Run(ctx)

	readInput(ctx, st, engine, storage, viewerID, conv)
}

// login authenticates, falling back to registration for an unknown username
// when a telephone number was supplied.
func login(ctx context.Context, st store.Store, username, secret, telephone string) (int, error) {
	id, err := st.Authenticate(ctx, username, secret)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, store.ErrUnregistered) && telephone != "" {
		id, err = st.Register(ctx, username, secret, telephone)
		if err != nil {
			return 0, err
		}
		log.Info().Str("username", username).Msg("registered new user")
		return id, nil
	}
	return 0, err
}

func resolveConversation(ctx context.Context, st store.Store, peer string, groupID int) (models.Conversation, error) {
	switch {
	case peer != "" && groupID != 0:
		return models.Conversation{}, errors.New("use either -peer or -group, not both")
	case peer != "":
		u, err := st.GetUserByUsername(ctx, peer)
		if err != nil {
			return models.Conversation{}, err
		}
		return models.DirectConversation(u.ID), nil
	case groupID != 0:
		g, err := st.GetGroup(ctx, groupID)
		if err != nil {
			return models.Conversation{}, err
		}
		return models.GroupConversation(g.ID), nil
	default:
		return models.Conversation{}, nil
	}
}

func readInput(ctx context.Context, st store.Store, engine *poll.Engine, storage *media.Storage, viewerID int, conv models.Conversation) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handleLine(ctx, st, engine, storage, viewerID, conv, line); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			log.Error().Err(err).Msg("command failed")
		}
	}
}

var errQuit = errors.New("quit")

func handleLine(ctx context.Context, st store.Store, engine *poll.Engine, storage *media.Storage, viewerID int, conv models.Conversation, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit":
		return errQuit

	case "/attach":
		if conv.IsZero() {
			return errors.New("no open conversation")
		}
		ref, err := storage.CopyIn(rest)
		if err != nil {
			return err
		}
		if _, err := st.InsertMessage(ctx, viewerID, conv, "", ref); err != nil {
			return err
		}
		metrics.MessagesSent.Inc()
		return nil

	case "/post":
		if _, err := st.CreatePost(ctx, viewerID, rest, nil); err != nil {
			return err
		}
		return nil

	case "/posts":
		posts, err := st.ListPosts(ctx)
		if err != nil {
			return err
		}
		for _, p := range posts {
			fmt.Printf("%s (%s): %s\n", p.Username, p.CreatedAt.Local().Format(time.DateTime), p.Content)
			if p.Media != nil {
				fmt.Printf("  [%s: %s]\n", p.Media.Kind, p.Media.Path)
			}
		}
		return nil

	case "/unread":
		counts, err := engine.Unread(ctx)
		if err != nil {
			return err
		}
		for c, n := range counts {
			if n > 0 {
				fmt.Printf("%s [%d]\n", c, n)
			}
		}
		return nil

	default:
		if conv.IsZero() {
			return errors.New("no open conversation")
		}
		if _, err := st.InsertMessage(ctx, viewerID, conv, line, nil); err != nil {
			return err
		}
		metrics.MessagesSent.Inc()
		return nil
	}
}

func printHistory(conv models.Conversation, history []models.Message) {
	fmt.Printf("--- %s ---\n", conv)
	for _, m := range history {
		fmt.Printf("%s (%s): %s\n", m.SenderName, m.CreatedAt.Local().Format(time.DateTime), m.Content)
		if m.Media != nil {
			fmt.Printf("  [%s: %s]\n", m.Media.Kind, m.Media.Path)
		}
	}
}
