// Package web implements a browser monitor showing training history and live
// text generation output.
package web

import (
	"fmt"
	"html/template"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/text"
	"github.com/jswu18/deepgen/textgen"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server holds the trained model and generation state shared by the handlers.
type Server struct {
	sync.Mutex
	Model    nnet.Predictor
	Vocab    *text.Vocab
	Corpus   string
	SeqLen   int
	GenChars int
	Temps    []float64
	History  []nnet.Stats
	freqs    []float64
	seed     string
	rng      *rand.Rand
	tmpl     *template.Template
	conn     *websocket.Conn
}

// Create a new monitor server. The default seed is a random window of the
// corpus text.
func NewServer(corpus, corpusText string, m nnet.Predictor, v *text.Vocab, conf nnet.Config, history []nnet.Stats, rng *rand.Rand) *Server {
	s := &Server{
		Model:    m,
		Vocab:    v,
		Corpus:   corpus,
		SeqLen:   conf.SeqLen,
		GenChars: conf.GenChars,
		Temps:    conf.Temperatures,
		History:  history,
		rng:      rng,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}
	runes := []rune(corpusText)
	start := rng.Intn(len(runes) - conf.SeqLen)
	s.seed = string(runes[start : start+conf.SeqLen])
	s.freqs = make([]float64, v.Size())
	for _, c := range runes {
		if ix, ok := v.Index(c); ok {
			s.freqs[ix]++
		}
	}
	for i := range s.freqs {
		s.freqs[i] /= float64(len(runes))
	}
	return s
}

// Router returns the route table for the monitor.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.Home)
	r.HandleFunc("/generate", s.Generate).Methods("POST")
	r.HandleFunc("/ws", s.Websocket)
	return r
}

func (s *Server) Heading() string {
	return fmt.Sprintf("%s: %d char vocabulary, %d char window", s.Corpus, s.Vocab.Size(), s.SeqLen)
}

func (s *Server) Seed() string { return s.seed }

// Handler function for the main monitor page
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()
	if err := s.tmpl.Execute(w, s); err != nil {
		log.Println("home:", err)
	}
}

// Handler function to start one generation run per temperature. Runs are
// independent and stream their output over the websocket as they complete.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	seed := r.FormValue("seed")
	if seed == "" {
		seed = s.seed
	}
	n, err := strconv.Atoi(r.FormValue("chars"))
	if err != nil || n <= 0 {
		n = s.GenChars
	}
	s.Lock()
	samplers := make([]*textgen.Sampler, len(s.Temps))
	for i := range s.Temps {
		samplers[i] = &textgen.Sampler{Vocab: s.Vocab, SeqLen: s.SeqLen, Rng: rand.New(rand.NewSource(s.rng.Int63()))}
	}
	s.Unlock()
	for i, temp := range s.Temps {
		go func(smp *textgen.Sampler, temp float64) {
			out, err := smp.Generate(s.Model, seed, n, temp)
			if err != nil {
				s.notify(fmt.Sprintf("generate error: %s", err))
				return
			}
			s.notify(fmt.Sprintf("----- temperature: %g\n%s\n", temp, out))
		}(samplers[i], temp)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Handler function for the websocket connection
func (s *Server) Websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket:", err)
		return
	}
	s.Lock()
	s.conn = conn
	s.Unlock()
}

// send a text message to the client if connected
func (s *Server) notify(msg string) {
	s.Lock()
	defer s.Unlock()
	if s.conn == nil {
		log.Println("notify: websocket is not initialised")
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		log.Println("notify: error writing to websocket", err)
	}
}
