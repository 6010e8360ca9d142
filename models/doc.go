// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CheckInRequest: deviceId, firstName, lastName, jobId, phone, company,
    area, cluster, plant, ts (all required)
  - CheckOutRequest: deviceId
  - AdminLoginRequest: username, password

# Response Types

  - OKResponse: ok
  - DeleteResponse: ok, deleted
  - StatusResponse: loggedIn, firstName
  - AdminMeResponse: authed
  - RosterResponse: count, rows
  - ErrorResponse: error code (see the Err* constants), optional message

# Domain Types

  - CheckIn: the current session record for one device
  - DailyCount: one (date, count) point of the metrics series
  - RosterFilter, MetricsFilter: optional query filters
  - Taxonomy: area → cluster → plant hierarchy plus the company list

# Timestamps

Check-in timestamps are client strings in "yyyy-mm-dd hh:mm" form. Only the
leading date is parsed (DateLayout); ordering relies on the lexicographic
order of the stored string.
*/
package models
