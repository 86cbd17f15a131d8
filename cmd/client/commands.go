package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"igo/internal/domain/game"
	"igo/internal/domain/goboard"
	"igo/internal/domain/gotypes"
	"igo/internal/domain/sgf"
	"igo/internal/render"
	gameUseCase "igo/internal/usecase/game"
)

// errQuit stops the read loop.
var errQuit = errors.New("quit")

// session is a local game for two players sharing one terminal.
type session struct {
	size  int
	state *goboard.GameState
	out   io.Writer
}

func newSession(size int, out io.Writer) *session {
	return &session{size: size, state: goboard.NewGame(size, size), out: out}
}

type command struct {
	name    string
	usage   string
	desc    string
	handler func(s *session, args []string) error
}

type registry struct {
	session  *session
	commands map[string]*command
}

func newRegistry(s *session) *registry {
	r := &registry{session: s, commands: make(map[string]*command)}
	r.register(&command{"play", "play <D4 | row col>", "Поставить камень", playHandler})
	r.register(&command{"pass", "pass", "Пропустить ход", passHandler})
	r.register(&command{"resign", "resign", "Сдаться", resignHandler})
	r.register(&command{"show", "show", "Показать доску", showHandler})
	r.register(&command{"neighbors", "neighbors <row> <col>", "Соседи точки", neighborsHandler})
	r.register(&command{"undo", "undo", "Отменить последний ход", undoHandler})
	r.register(&command{"sgf", "sgf", "Запись партии в SGF", sgfHandler})
	r.register(&command{"quit", "quit", "Выйти", func(*session, []string) error { return errQuit }})
	r.register(&command{"help", "help", "Список команд", r.helpHandler})
	return r
}

func (r *registry) register(cmd *command) {
	r.commands[cmd.name] = cmd
}

// execute runs one input line and reports whether the loop should stop.
func (r *registry) execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmd, exists := r.commands[strings.ToLower(parts[0])]
	if !exists {
		fmt.Fprintf(r.session.out, "Неизвестная команда: %s, наберите help\n", parts[0])
		return false
	}

	if err := cmd.handler(r.session, parts[1:]); err != nil {
		if errors.Is(err, errQuit) {
			return true
		}
		fmt.Fprintf(r.session.out, "Ошибка: %v\n", err)
	}
	return false
}

func (r *registry) helpHandler(s *session, _ []string) error {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := r.commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", cmd.usage, cmd.desc)
	}
	return nil
}

func (s *session) apply(m goboard.Move) error {
	if err := s.state.CheckMove(m); err != nil {
		return err
	}
	next, err := s.state.ApplyMove(m)
	if err != nil {
		return err
	}
	s.state = next
	if next.IsOver() {
		fmt.Fprintf(s.out, "Партия окончена: %s\n", s.result())
	}
	return nil
}

func (s *session) result() string {
	last := s.state.LastMove
	if last != nil && last.IsResign {
		// сдался тот, кто ходил последним
		return s.state.NextPlayer.Color() + "+R"
	}
	return "?"
}

func playHandler(s *session, args []string) error {
	p, err := parsePoint(args, s.size)
	if err != nil {
		return err
	}
	if err = s.apply(goboard.Play(p)); err != nil {
		return err
	}
	return showHandler(s, nil)
}

func parsePoint(args []string, size int) (gotypes.Point, error) {
	switch len(args) {
	case 1:
		return sgf.ParseStandard(args[0], size)
	case 2:
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return gotypes.Point{}, fmt.Errorf("неверная строка: %q", args[0])
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return gotypes.Point{}, fmt.Errorf("неверный столбец: %q", args[1])
		}
		return gotypes.Point{Row: row, Col: col}, nil
	}
	return gotypes.Point{}, fmt.Errorf("usage: play <D4 | row col>")
}

func passHandler(s *session, _ []string) error {
	return s.apply(goboard.PassTurn())
}

func resignHandler(s *session, _ []string) error {
	return s.apply(goboard.Resign())
}

func showHandler(s *session, _ []string) error {
	fmt.Fprint(s.out, render.Text(s.state.Board))
	fmt.Fprintf(s.out, "Ход: %s, чёрных камней %d, белых %d\n",
		s.state.NextPlayer, s.state.Board.StoneCount(gotypes.Black), s.state.Board.StoneCount(gotypes.White))
	return nil
}

func neighborsHandler(s *session, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: neighbors <row> <col>")
	}
	p, err := parsePoint(args, s.size)
	if err != nil {
		return err
	}
	for _, n := range p.Neighbors() {
		mark := "вне доски"
		if s.state.Board.IsOnGrid(n) {
			mark = "пусто"
			if color, ok := s.state.Board.Get(n); ok {
				mark = color.String()
			}
		}
		fmt.Fprintf(s.out, "%v %s\n", n, mark)
	}
	return nil
}

func undoHandler(s *session, _ []string) error {
	if s.state.Previous == nil {
		return fmt.Errorf("нечего отменять")
	}
	s.state = s.state.Previous
	return showHandler(s, nil)
}

func sgfHandler(s *session, _ []string) error {
	record := game.Game{BoardSize: s.size, PlayerBlack: "black", PlayerWhite: "white", CreatedAt: time.Now()}
	color := gotypes.Black
	for _, m := range s.state.Moves() {
		record.Moves = append(record.Moves, game.NewMove(color, m))
		color = color.Other()
	}
	if s.state.IsOver() {
		record.Result = s.result()
	}

	uc := gameUseCase.GameUseCase{}
	fmt.Fprintln(s.out, sgf.Serialize(uc.PrepareSgfFile(record)))
	return nil
}
