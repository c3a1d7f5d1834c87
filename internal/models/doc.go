// Package models defines the domain entities shared across the socialdash client.
//
// The backend owns all of this data; these types mirror its JSON
// representations. The only derived type is [Summary], recomputed by the
// aggregator from the current [SocialAccount] collection.
//
// [Platform] carries the presentation variance between networks: its
// [Capability] descriptor tells the renderer which detail surfaces (message
// inbox, post feed, manual metrics form) a platform dashboard exposes, so a
// single renderer serves every platform.
package models
