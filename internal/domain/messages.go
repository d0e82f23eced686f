package domain

// ClientMessage is sent by a websocket client.
type ClientMessage struct {
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty,omitempty"`
	AgentPlayer int    `json:"agentPlayer,omitempty"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
}

// ServerMessage is pushed to a websocket client.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	Winner      int     `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	MoveCount   int     `json:"moveCount,omitempty"`
	Rating      int     `json:"rating,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
