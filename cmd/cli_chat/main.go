package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"roomcraft/internal/agent"
	"roomcraft/internal/bootstrap"
	"roomcraft/internal/config"
	"roomcraft/internal/domain"
	"roomcraft/internal/render"
	"roomcraft/internal/service"
)

const agentName = "RoomCraft"

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	repo, cleanup, err := bootstrap.NewSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	store := service.NewSessionStore(repo, logger)
	if err := store.Load(ctx); err != nil {
		log.Fatal(err)
	}

	agentClient := agent.NewHTTPClient(cfg.AgentURL, cfg.AgentAPIKey, logger)
	conv := service.NewConversationController(store, agentClient, cfg.AgentID, cfg.AgentTimeout(), logger)

	if sessions := store.List(); len(sessions) > 0 {
		_ = conv.Activate(sessions[0].ID)
	}

	fmt.Println("===== RoomCraft =====")
	printHelp()
	showWarning(store)
	printTranscript(conv.Messages())

	for {
		fmt.Print("Tu > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "salir") || strings.EqualFold(line, "exit") || line == "/quit" {
			fmt.Println("Saliendo...")
			return
		}

		if strings.HasPrefix(line, "/") {
			if err := runCommand(ctx, reader, store, conv, line); err != nil {
				fmt.Printf("error: %v\n", err)
			}
		} else {
			send(ctx, conv, line)
		}
		showWarning(store)
	}
}

func runCommand(ctx context.Context, reader *bufio.Reader, store *service.SessionStore, conv *service.ConversationController, line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		printHelp()
	case "/new":
		if _, err := conv.NewSession(ctx); err != nil {
			return fmt.Errorf("crear sesion: %w", err)
		}
		printTranscript(conv.Messages())
	case "/list":
		fmt.Println(render.SessionList(service.Summarize(store.List(), time.Now()), conv.ActiveSessionID(), ""))
	case "/search":
		fmt.Println(render.SessionList(service.Summarize(store.Search(arg), time.Now()), conv.ActiveSessionID(), arg))
	case "/open":
		sess, err := pickSession(store, arg)
		if err != nil {
			return err
		}
		if err := conv.Activate(sess.ID); err != nil {
			return fmt.Errorf("abrir sesion: %w", err)
		}
		printTranscript(conv.Messages())
	case "/delete":
		sess, err := pickSession(store, arg)
		if err != nil {
			return err
		}
		if conv.DeleteSession(ctx, sess.ID) {
			fmt.Printf("Sesion %q eliminada.\n", sess.Title)
		}
	case "/rename":
		if err := conv.RenameActive(ctx, arg); err != nil {
			return fmt.Errorf("renombrar: %w", err)
		}
		fmt.Println("Titulo actualizado.")
	case "/quick":
		idx, err := strconv.Atoi(arg)
		if err != nil {
			for i, p := range service.QuickPrompts {
				fmt.Printf("[%d] %s\n", i+1, p)
			}
			return nil
		}
		prompt, ok := service.QuickPrompt(idx - 1)
		if !ok {
			return errors.New("atajo invalido")
		}
		send(ctx, conv, prompt)
	case "/prefs":
		text, ok := preferencesFlow(reader)
		if !ok {
			fmt.Println("Sin preferencias seleccionadas.")
			return nil
		}
		send(ctx, conv, text)
	default:
		fmt.Println("Comando desconocido. Escribe /help.")
	}
	return nil
}

// send ignora en silencio los rechazos del controlador (texto vacio o envio en curso).
func send(ctx context.Context, conv *service.ConversationController, text string) {
	out, err := conv.Send(ctx, text)
	if errors.Is(err, service.ErrEmptyInput) || errors.Is(err, service.ErrSendInFlight) {
		return
	}
	if err != nil {
		fmt.Printf("error enviando mensaje: %v\n", err)
		return
	}
	fmt.Println(render.Message(out.AgentMessage, agentName))
}

func pickSession(store *service.SessionStore, arg string) (domain.Session, error) {
	sessions := store.List()
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(sessions) {
		return domain.Session{}, errors.New("seleccion invalida, usa el numero de /list")
	}
	return sessions[idx-1], nil
}

func preferencesFlow(reader *bufio.Reader) (string, bool) {
	fmt.Println("Esquemas de color:")
	for i, s := range service.ColorSchemes {
		fmt.Printf("[%d] %s (%s)\n", i+1, s.Name, strings.Join(s.Colors, ", "))
	}
	scheme := readChoice(reader, "Esquema (enter para omitir): ", len(service.ColorSchemes))

	fmt.Println("Estilos:")
	for i, s := range service.DesignStyles {
		fmt.Printf("[%d] %s - %s\n", i+1, s.Name, s.Description)
	}
	style := readChoice(reader, "Estilo (enter para omitir): ", len(service.DesignStyles))

	var schemeName, styleName string
	if scheme >= 0 {
		schemeName = service.ColorSchemes[scheme].Name
	}
	if style >= 0 {
		styleName = service.DesignStyles[style].Name
	}
	return service.ComposePreferences(schemeName, styleName)
}

// readChoice devuelve el indice base 0 elegido, o -1 si se omite.
func readChoice(reader *bufio.Reader, prompt string, n int) int {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || v < 1 || v > n {
		return -1
	}
	return v - 1
}

func printTranscript(messages []domain.Message) {
	for _, m := range messages {
		fmt.Println(render.Message(m, agentName))
	}
}

func showWarning(store *service.SessionStore) {
	if w := render.Warning(store.Warning()); w != "" {
		fmt.Println(w)
	}
}

func printHelp() {
	fmt.Println("Comandos: /new /list /search <texto> /open <n> /delete <n> /rename <titulo> /quick [n] /prefs /quit")
}
