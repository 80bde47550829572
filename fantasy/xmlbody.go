package fantasy

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

// Outbound XML request bodies for the mutating endpoints. Success for these
// calls is judged solely by HTTP status, so nothing here is decoded back.

type transactionData struct {
	Type          string `xml:"type"`
	SourceTeamKey string `xml:"source_team_key,omitempty"`
	DestTeamKey   string `xml:"destination_team_key,omitempty"`
}

type transactionPlayer struct {
	PlayerKey string          `xml:"player_key"`
	Data      transactionData `xml:"transaction_data"`
}

type transactionPlayers struct {
	Players []transactionPlayer `xml:"player"`
}

type transactionBody struct {
	XMLName        xml.Name            `xml:"fantasy_content"`
	Type           string              `xml:"transaction>type"`
	TransactionKey string              `xml:"transaction>transaction_key,omitempty"`
	Action         string              `xml:"transaction>action,omitempty"`
	TradeNote      string              `xml:"transaction>trade_note,omitempty"`
	Player         *transactionPlayer  `xml:"transaction>player,omitempty"`
	Players        *transactionPlayers `xml:"transaction>players,omitempty"`
}

// addDropBody builds the transaction body for an add, a drop, or a combined
// add/drop. Pass -1 for the unused id.
func addDropBody(teamKey string, addID, dropID int) func(gamePrefix string) (string, error) {
	return func(gamePrefix string) (string, error) {
		var body transactionBody
		switch {
		case addID >= 0 && dropID >= 0:
			body.Type = "add/drop"
			body.Players = &transactionPlayers{Players: []transactionPlayer{
				{
					PlayerKey: model.PlayerKey(gamePrefix, addID),
					Data:      transactionData{Type: "add", DestTeamKey: teamKey},
				},
				{
					PlayerKey: model.PlayerKey(gamePrefix, dropID),
					Data:      transactionData{Type: "drop", SourceTeamKey: teamKey},
				},
			}}
		case addID >= 0:
			body.Type = "add"
			body.Player = &transactionPlayer{
				PlayerKey: model.PlayerKey(gamePrefix, addID),
				Data:      transactionData{Type: "add", DestTeamKey: teamKey},
			}
		case dropID >= 0:
			body.Type = "drop"
			body.Player = &transactionPlayer{
				PlayerKey: model.PlayerKey(gamePrefix, dropID),
				Data:      transactionData{Type: "drop", SourceTeamKey: teamKey},
			}
		default:
			return "", fmt.Errorf("no players given for the transaction")
		}
		return marshalBody(body)
	}
}

type rosterPlayer struct {
	PlayerKey string `xml:"player_key"`
	Position  string `xml:"position"`
}

type rosterBody struct {
	XMLName      xml.Name       `xml:"fantasy_content"`
	CoverageType string         `xml:"roster>coverage_type"`
	Date         string         `xml:"roster>date"`
	Players      []rosterPlayer `xml:"roster>players>player"`
}

func changePositionsBody(gamePrefix string, day time.Time, modified map[int]string) (string, error) {
	if len(modified) == 0 {
		return "", fmt.Errorf("no position changes given")
	}
	body := rosterBody{
		CoverageType: "date",
		Date:         day.Format(time.DateOnly),
	}
	for id, pos := range modified {
		body.Players = append(body.Players, rosterPlayer{
			PlayerKey: model.PlayerKey(gamePrefix, id),
			Position:  pos,
		})
	}
	return marshalBody(body)
}

func tradeActionBody(transactionKey, action, tradeNote string) (string, error) {
	return marshalBody(transactionBody{
		Type:           "pending_trade",
		TransactionKey: transactionKey,
		Action:         action,
		TradeNote:      tradeNote,
	})
}

func marshalBody(v any) (string, error) {
	b, err := xml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error building request body: %w", err)
	}
	return xml.Header + string(b), nil
}
