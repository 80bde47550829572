package testutils

import (
	"fmt"
	"strings"
)

type cannedDoc struct {
	match string
	doc   map[string]any
}

// CannedRequester is an in-memory Requester for tests that need to count
// requests or serve documents without a server round trip. Register a
// document per URI substring; the earliest registered match wins.
type CannedRequester struct {
	docs []cannedDoc

	GetURIs  []string
	PutURIs  []string
	PostURIs []string
	Bodies   []string
}

func NewCannedRequester() *CannedRequester {
	return &CannedRequester{}
}

// Register associates a document with any request URI containing match.
func (c *CannedRequester) Register(match string, doc map[string]any) {
	c.docs = append(c.docs, cannedDoc{match: match, doc: doc})
}

func (c *CannedRequester) Get(uri string) (map[string]any, error) {
	c.GetURIs = append(c.GetURIs, uri)
	for _, d := range c.docs {
		if strings.Contains(uri, d.match) {
			return d.doc, nil
		}
	}
	return nil, fmt.Errorf("no canned response for %q", uri)
}

func (c *CannedRequester) Put(uri, body string) error {
	c.PutURIs = append(c.PutURIs, uri)
	c.Bodies = append(c.Bodies, body)
	return nil
}

func (c *CannedRequester) Post(uri, body string) error {
	c.PostURIs = append(c.PostURIs, uri)
	c.Bodies = append(c.Bodies, body)
	return nil
}
