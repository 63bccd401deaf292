package toa

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/toa-client/internal/testutil"
)

func newTestClient(t *testing.T, api *testutil.FakeAPI) *Client {
	t.Helper()
	return NewClient(Config{
		APIKey:            "secret-key",
		BaseURL:           api.URL(),
		ApplicationOrigin: "toa-tests",
	})
}

func TestTeamHitsAPIAndMapsResponse(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/team/{team_key}", http.StatusOK, testutil.TeamJSON)
	client := newTestClient(t, api)

	team, err := client.Team(context.Background(), 16405)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := Team{
		TeamKey:       "16405",
		RegionKey:     "USNYNY",
		LeagueKey:     "USNYNYNYC",
		TeamNumber:    16405,
		TeamNameShort: "Gearheads",
		TeamNameLong:  "Bronx Science Gearheads",
		RobotName:     "Sprocket",
		LastActive:    "2223",
		City:          "Bronx",
		StateProv:     "New York",
		ZipCode:       "10468",
		Country:       "USA",
		RookieYear:    2019,
		Website:       "https://example.org/gearheads",
	}
	if !reflect.DeepEqual(team, expected) {
		t.Fatalf("unexpected team\n got: %+v\nwant: %+v", team, expected)
	}

	req := api.LastRequest(t)
	if req.Method != http.MethodGet {
		t.Fatalf("expected GET, got %s", req.Method)
	}
	if req.Path != testutil.APIPrefix+"/team/16405" {
		t.Fatalf("unexpected path %s", req.Path)
	}
	if got := req.Header.Get(HeaderAPIKey); got != "secret-key" {
		t.Fatalf("expected api key header, got %q", got)
	}
	if got := req.Header.Get(HeaderApplicationOrigin); got != "toa-tests" {
		t.Fatalf("expected application origin header, got %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}
}

func TestTeamWLTAddsSeasonQuery(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/team/{team_key}/wlt", http.StatusOK, testutil.WLTJSON)
	client := newTestClient(t, api)

	wlt, err := client.TeamWLT(context.Background(), 16405, Season1920)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if wlt != (WLT{Wins: 42, Losses: 17, Ties: 3}) {
		t.Fatalf("unexpected wlt %+v", wlt)
	}
	if q := api.LastRequest(t).RawQuery; q != "season_key=1920" {
		t.Fatalf("expected season query, got %q", q)
	}

	if _, err := client.TeamWLT(context.Background(), 16405, SeasonUnspecified); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q := api.LastRequest(t).RawQuery; q != "" {
		t.Fatalf("expected no query for unspecified season, got %q", q)
	}
}

func TestTeamSeasonEndpointsEmbedSeasonInPath(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/team/{team_key}/results/{season_key}", http.StatusOK, testutil.RankingsJSON)
	api.Handle("/team/{team_key}/events/{season_key}", http.StatusOK, `[{"event_participant_key":"1920-FIM-CMP-T16405","event_key":"1920-FIM-CMP","team_key":"16405","team_number":16405,"is_active":true,"card_status":null}]`)
	api.Handle("/team/{team_key}/matches/{season_key}", http.StatusOK, `[{"match_participant_key":"1920-FIM-CMP-Q001-1-R1","match_key":"1920-FIM-CMP-Q001-1","team_key":"16405","station":11}]`)
	api.Handle("/team/{team_key}/awards/{season_key}", http.StatusOK, `[{"awards_key":"1920-FIM-CMP-INS1","event_key":"1920-FIM-CMP","award_key":"INS1","team_key":"16405","receiver_name":null,"award_name":"Inspire Award Winner","award_rank":1}]`)
	client := newTestClient(t, api)
	ctx := context.Background()

	results, err := client.TeamResults(ctx, 16405, Season1920)
	if err != nil || len(results) != 2 {
		t.Fatalf("unexpected results %+v err=%v", results, err)
	}
	if p := api.LastRequest(t).Path; p != testutil.APIPrefix+"/team/16405/results/1920" {
		t.Fatalf("unexpected path %s", p)
	}

	events, err := client.TeamEvents(ctx, 16405, Season1920)
	if err != nil || len(events) != 1 || !events[0].IsActive || events[0].CardStatus != "" {
		t.Fatalf("unexpected events %+v err=%v", events, err)
	}

	matches, err := client.TeamMatches(ctx, 16405, Season1920)
	if err != nil || len(matches) != 1 || matches[0].Station != 11 || matches[0].Team != nil {
		t.Fatalf("unexpected matches %+v err=%v", matches, err)
	}

	awards, err := client.TeamAwards(ctx, 16405, Season1920)
	if err != nil || len(awards) != 1 || awards[0].AwardName != "Inspire Award Winner" || awards[0].AwardRank != 1 {
		t.Fatalf("unexpected awards %+v err=%v", awards, err)
	}
}

func TestEventDecodesSeasonAndNullFields(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event/{event_key}", http.StatusOK, testutil.EventJSON)
	client := newTestClient(t, api)

	event, err := client.Event(context.Background(), "1920-FIM-CMP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := Event{
		EventKey:              "1920-FIM-CMP",
		SeasonKey:             Season1920,
		RegionKey:             "FIM",
		EventCode:             "fimcmp",
		EventTypeKey:          "SCMP",
		EventRegionNumber:     1,
		EventName:             "Michigan State Championship",
		StartDate:             "2020-03-06T05:00:00.000Z",
		EndDate:               "2020-03-07T05:00:00.000Z",
		WeekKey:               "CMP",
		City:                  "Grand Rapids",
		StateProv:             "MI",
		Country:               "USA",
		Venue:                 "DeVos Place",
		TimeZone:              "America/Detroit",
		IsPublic:              true,
		ActiveTournamentLevel: "0",
		AllianceCount:         4,
		FieldCount:            2,
		AdvanceSpots:          6,
		AdvanceEvent:          "1920-CMP-DET",
	}
	if !reflect.DeepEqual(event, expected) {
		t.Fatalf("unexpected event\n got: %+v\nwant: %+v", event, expected)
	}

	start, err := event.StartTime()
	if err != nil {
		t.Fatalf("expected start date to parse, got %v", err)
	}
	if !start.Equal(time.Date(2020, 3, 6, 5, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time %s", start)
	}
}

func TestEventsFiltersBySeason(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event", http.StatusOK, testutil.EventJSON)
	client := newTestClient(t, api)

	events, err := client.Events(context.Background(), Season1920)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 1 || events[0].SeasonKey != Season1920 {
		t.Fatalf("unexpected events %+v", events)
	}
	if q := api.LastRequest(t).RawQuery; q != "season_key=1920" {
		t.Fatalf("expected season query, got %q", q)
	}
}

func TestEventMatchesMapsScoresAndAlliances(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event/{event_key}/matches", http.StatusOK, testutil.MatchesJSON)
	client := newTestClient(t, api)

	matches, err := client.EventMatches(context.Background(), "1920-FIM-CMP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.MatchKey != "1920-FIM-CMP-Q001-1" || m.MatchName != "Quals 1" || m.TournamentLevel != 1 {
		t.Fatalf("unexpected identifiers %+v", m)
	}
	if m.RedScore != 118 || m.BlueScore != 97 || m.BluePenalty != 10 {
		t.Fatalf("unexpected totals %+v", m)
	}
	if m.RedAutoScore != 28 || m.RedTeleScore != 70 || m.RedEndScore != 20 {
		t.Fatalf("unexpected red breakdown %+v", m)
	}
	if m.BlueAutoScore != 14 || m.BlueTeleScore != 63 || m.BlueEndScore != 10 {
		t.Fatalf("unexpected blue breakdown %+v", m)
	}
	if m.VideoURL != "" || m.CycleTime != 420 {
		t.Fatalf("unexpected optional fields %+v", m)
	}
	if got := m.RedTeams(); !reflect.DeepEqual(got, []string{"16405", "8565"}) {
		t.Fatalf("unexpected red alliance %v", got)
	}
	if got := m.BlueTeams(); !reflect.DeepEqual(got, []string{"731", "9794"}) {
		t.Fatalf("unexpected blue alliance %v", got)
	}
}

func TestMatchAndParticipants(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/match/{match_key}", http.StatusOK, testutil.MatchesJSON)
	api.Handle("/match/{match_key}/participants", http.StatusOK, `[{"match_participant_key":"k","match_key":"1920-FIM-CMP-Q001-1","team_key":"731","station":21,"station_status":1,"ref_status":2,"team":{"team_key":"731","team_number":731}}]`)
	client := newTestClient(t, api)

	match, err := client.Match(context.Background(), "1920-FIM-CMP-Q001-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(match.Participants) != 4 {
		t.Fatalf("expected 4 participants, got %d", len(match.Participants))
	}

	parts, err := client.MatchParticipants(context.Background(), "1920-FIM-CMP-Q001-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(parts) != 1 || parts[0].RefStatus != 2 || parts[0].Team == nil || parts[0].Team.TeamNumber != 731 {
		t.Fatalf("unexpected participants %+v", parts)
	}
}

func TestEventListingsDecode(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event/{event_key}/rankings", http.StatusOK, testutil.RankingsJSON)
	api.Handle("/event/{event_key}/teams", http.StatusOK, `[{"event_participant_key":"p","event_key":"1920-FIM-CMP","team_key":"16405","team_number":16405,"is_active":true}]`)
	api.Handle("/event/{event_key}/awards", http.StatusOK, `[]`)
	client := newTestClient(t, api)
	ctx := context.Background()

	rankings, err := client.EventRankings(ctx, "1920-FIM-CMP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rankings) != 2 {
		t.Fatalf("expected 2 rankings, got %d", len(rankings))
	}
	first := rankings[0]
	if first.Rank != 1 || first.RankChange != 2 || first.TieBreakerPoints != 412.5 || first.HighestQualScore != 212 {
		t.Fatalf("unexpected first ranking %+v", first)
	}
	if first.Team == nil || first.Team.TeamNameShort != "Gearheads" {
		t.Fatalf("expected embedded team, got %+v", first.Team)
	}
	if rankings[1].Team != nil || rankings[1].RankChange != -1 {
		t.Fatalf("unexpected second ranking %+v", rankings[1])
	}

	teams, err := client.EventTeams(ctx, "1920-FIM-CMP")
	if err != nil || len(teams) != 1 || teams[0].TeamNumber != 16405 {
		t.Fatalf("unexpected teams %+v err=%v", teams, err)
	}

	awards, err := client.EventAwards(ctx, "1920-FIM-CMP")
	if err != nil || len(awards) != 0 {
		t.Fatalf("unexpected awards %+v err=%v", awards, err)
	}
}

func TestMetaEndpoints(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/", http.StatusOK, testutil.VersionJSON)
	api.Handle("/seasons", http.StatusOK, testutil.SeasonsJSON)
	api.Handle("/regions", http.StatusOK, `[{"region_key":"FIM","description":"Michigan"}]`)
	api.Handle("/leagues", http.StatusOK, `[{"league_key":"USCANOR","region_key":"USCA","season_key":"2122","description":"NorCal"}]`)
	api.Handle("/event-types", http.StatusOK, `[{"event_type_key":"SCMP","description":"Regional Championship"}]`)
	client := newTestClient(t, api)
	ctx := context.Background()

	version, err := client.APIVersion(ctx)
	if err != nil || version != "3.7.0" {
		t.Fatalf("unexpected version %q err=%v", version, err)
	}

	seasons, err := client.Seasons(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []SeasonDetails{
		{SeasonKey: Season1819, Description: "Rover Ruckus"},
		{SeasonKey: Season1920, Description: "SKYSTONE", IsActive: true},
	}
	if !reflect.DeepEqual(seasons, want) {
		t.Fatalf("unexpected seasons %+v", seasons)
	}

	regions, err := client.Regions(ctx)
	if err != nil || len(regions) != 1 || regions[0].RegionKey != "FIM" {
		t.Fatalf("unexpected regions %+v err=%v", regions, err)
	}

	leagues, err := client.Leagues(ctx, Season2122)
	if err != nil || len(leagues) != 1 || leagues[0].SeasonKey != Season2122 {
		t.Fatalf("unexpected leagues %+v err=%v", leagues, err)
	}
	if q := api.LastRequest(t).RawQuery; q != "season_key=2122" {
		t.Fatalf("expected season query, got %q", q)
	}

	types, err := client.EventTypes(ctx)
	if err != nil || len(types) != 1 || types[0].EventTypeKey != "SCMP" {
		t.Fatalf("unexpected event types %+v err=%v", types, err)
	}
}

func TestNotFoundReturnsAPIStatusError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client := newTestClient(t, api)

	_, err := client.Team(context.Background(), 99999)
	if err == nil {
		t.Fatal("expected error on 404")
	}
	statusErr, ok := AsAPIStatusError(err)
	if !ok {
		t.Fatalf("expected APIStatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.StatusCode)
	}
	if statusErr.Endpoint != pathTeam {
		t.Fatalf("expected endpoint template, got %s", statusErr.Endpoint)
	}
	if !strings.Contains(statusErr.Message, "Content not found") {
		t.Fatalf("expected TOA error message, got %q", statusErr.Message)
	}
	if _, ok := AsTransportError(err); ok {
		t.Fatal("404 must not be reported as a transport error")
	}
	if !IsNotFound(err) {
		t.Fatal("expected IsNotFound")
	}
}

func TestServerErrorKeepsBody(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/seasons", http.StatusBadGateway, "  upstream down  ")
	client := newTestClient(t, api)

	_, err := client.Seasons(context.Background())
	statusErr, ok := AsAPIStatusError(err)
	if !ok {
		t.Fatalf("expected APIStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Body != "upstream down" || statusErr.Message != "" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected body in error string, got %q", err.Error())
	}
}

func TestRateLimitCarriesRetryAfter(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.HandleResponse("/event/{event_key}/rankings", func(map[string]string) testutil.Response {
		return testutil.Response{
			Status: http.StatusTooManyRequests,
			Body:   `{"_code":429,"_message":"Too many requests"}`,
			Header: http.Header{"Retry-After": []string{"30"}},
		}
	})
	client := newTestClient(t, api)

	_, err := client.EventRankings(context.Background(), "1920-FIM-CMP")
	if !IsRateLimited(err) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	statusErr, _ := AsAPIStatusError(err)
	if statusErr.RetryAfter != 30*time.Second {
		t.Fatalf("expected 30s retry-after, got %s", statusErr.RetryAfter)
	}
	if statusErr.Message != "Too many requests" {
		t.Fatalf("unexpected message %q", statusErr.Message)
	}
}

func TestInvalidJSONReturnsDeserializationError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/team/{team_key}", http.StatusOK, "{bad json")
	client := newTestClient(t, api)

	_, err := client.Team(context.Background(), 16405)
	dErr, ok := AsDeserializationError(err)
	if !ok {
		t.Fatalf("expected DeserializationError, got %T: %v", err, err)
	}
	if dErr.Endpoint != pathTeam || dErr.Body != "{bad json" {
		t.Fatalf("unexpected deserialization error %+v", dErr)
	}
	if _, ok := AsTransportError(err); ok {
		t.Fatal("bad json must not be reported as a transport error")
	}
}

func TestSchemaMismatchReturnsDeserializationError(t *testing.T) {
	cases := map[string]string{
		"wrong type":     `[{"team_number":"not-a-number"}]`,
		"object":         `{"team_number":16405}`,
		"empty array":    `[]`,
		"trailing data":  `[{"team_number":1}] extra`,
		"unknown season": `[{"event_key":"2425-X","season_key":"2425"}]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.Handle("/team/{team_key}", http.StatusOK, body)
			api.Handle("/event/{event_key}", http.StatusOK, body)
			client := newTestClient(t, api)

			var err error
			if name == "unknown season" {
				_, err = client.Event(context.Background(), "2425-X")
			} else {
				_, err = client.Team(context.Background(), 1)
			}
			if _, ok := AsDeserializationError(err); !ok {
				t.Fatalf("expected DeserializationError, got %T: %v", err, err)
			}
			if name == "empty array" && !errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
			if name == "unknown season" && !errors.Is(err, ErrUnknownSeason) {
				t.Fatalf("expected ErrUnknownSeason, got %v", err)
			}
		})
	}
}

func TestRefusedConnectionReturnsTransportError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client := newTestClient(t, api)
	api.Close()

	_, err := client.Team(context.Background(), 16405)
	tErr, ok := AsTransportError(err)
	if !ok {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if tErr.Method != http.MethodGet || !strings.HasSuffix(tErr.URL, "/team/16405") || tErr.Endpoint != pathTeam {
		t.Fatalf("unexpected transport error %+v", tErr)
	}
	if _, ok := AsAPIStatusError(err); ok {
		t.Fatal("refused connection must not be reported as a status error")
	}
}

func TestCanceledContextReturnsTransportError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/seasons", http.StatusOK, testutil.SeasonsJSON)
	client := newTestClient(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Seasons(ctx)
	if _, ok := AsTransportError(err); !ok {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestBodyReadFailureIsTransportError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(failingReader{}),
			Header:     make(http.Header),
		}, nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.Regions(context.Background())
	if _, ok := AsTransportError(err); !ok {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestEmptyVersionIsReportedAsFailedRequest(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/", http.StatusOK, `{"version":""}`)
	obs := &recordingObserver{}
	logger, buf := testutil.NewBufferLogger()
	client := NewClient(Config{BaseURL: api.URL(), Observer: obs, Logger: logger})

	_, err := client.APIVersion(context.Background())
	dErr, ok := AsDeserializationError(err)
	if !ok || !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected empty response DeserializationError, got %v", err)
	}
	if dErr.Endpoint != pathRoot {
		t.Fatalf("unexpected endpoint %q", dErr.Endpoint)
	}

	if len(obs.calls) != 1 || obs.calls[0].err == nil {
		t.Fatalf("expected the observer to see the failure, got %+v", obs.calls)
	}
	if out := buf.String(); !strings.Contains(out, "toa request failed") || strings.Contains(out, "toa request complete") {
		t.Fatalf("expected failure log only, got %q", out)
	}
}

func TestEmptyArrayIsReportedAsFailedRequest(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event/{event_key}", http.StatusOK, `[]`)
	obs := &recordingObserver{}
	client := NewClient(Config{BaseURL: api.URL(), Observer: obs})

	if _, err := client.Event(context.Background(), "1920-FIM-CMP"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if len(obs.calls) != 1 || obs.calls[0].status != http.StatusOK || obs.calls[0].err == nil {
		t.Fatalf("expected a failed observation, got %+v", obs.calls)
	}
}

func TestRepeatedCallsReturnIndependentRecords(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/event/{event_key}/rankings", http.StatusOK, testutil.RankingsJSON)
	client := newTestClient(t, api)
	ctx := context.Background()

	first, err := client.EventRankings(ctx, "1920-FIM-CMP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := client.EventRankings(ctx, "1920-FIM-CMP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected equal records\nfirst:  %+v\nsecond: %+v", first, second)
	}

	first[0].Rank = 99
	first[0].Team.TeamNameShort = "mutated"
	if second[0].Rank != 1 || second[0].Team.TeamNameShort != "Gearheads" {
		t.Fatalf("records share state: %+v", second[0])
	}
	if len(api.Requests()) != 2 {
		t.Fatalf("expected one request per call, got %d", len(api.Requests()))
	}
}

func TestConcurrentCallsShareClient(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/team/{team_key}", http.StatusOK, testutil.TeamJSON)
	client := newTestClient(t, api)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Team(context.Background(), 16405); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInvalidArgumentsSkipNetwork(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request to %s", req.URL)
		return nil, nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})
	ctx := context.Background()

	calls := map[string]func() error{
		"team zero":         func() error { _, err := client.Team(ctx, 0); return err },
		"wlt bad season":    func() error { _, err := client.TeamWLT(ctx, 1, Season(99)); return err },
		"results no season": func() error { _, err := client.TeamResults(ctx, 1, SeasonUnspecified); return err },
		"events negative":   func() error { _, err := client.TeamEvents(ctx, -5, Season1920); return err },
		"event blank":       func() error { _, err := client.Event(ctx, "  "); return err },
		"rankings blank":    func() error { _, err := client.EventRankings(ctx, ""); return err },
		"match blank":       func() error { _, err := client.Match(ctx, ""); return err },
		"leagues bad":       func() error { _, err := client.Leagues(ctx, Season(-1)); return err },
	}

	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}

func TestObserverAndLoggerSeeEveryRequest(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/seasons", http.StatusOK, testutil.SeasonsJSON)
	obs := &recordingObserver{}
	logger, buf := testutil.NewBufferLogger()
	client := NewClient(Config{BaseURL: api.URL(), Observer: obs, Logger: logger})
	client.now = testutil.StepClock(time.Date(2020, 3, 6, 0, 0, 0, 0, time.UTC), 25*time.Millisecond)
	client.requestID = func() string { return "req-1" }

	if _, err := client.Seasons(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := client.Team(context.Background(), 424242); err == nil {
		t.Fatal("expected 404 error")
	}

	if len(obs.calls) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.calls))
	}
	if obs.calls[0].endpoint != pathSeasons || obs.calls[0].status != http.StatusOK || obs.calls[0].err != nil {
		t.Fatalf("unexpected first observation %+v", obs.calls[0])
	}
	if obs.calls[0].duration != 25*time.Millisecond {
		t.Fatalf("expected stepped duration, got %s", obs.calls[0].duration)
	}
	if obs.calls[1].endpoint != pathTeam || obs.calls[1].status != http.StatusNotFound || obs.calls[1].err == nil {
		t.Fatalf("unexpected second observation %+v", obs.calls[1])
	}

	out := buf.String()
	if !strings.Contains(out, "request_id=req-1") || !strings.Contains(out, "endpoint=/seasons") {
		t.Fatalf("expected request log fields, got %q", out)
	}
	if !strings.Contains(out, "toa request failed") {
		t.Fatalf("expected failure log, got %q", out)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := New("k")
	if c.BaseURL() != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.BaseURL())
	}
	if c.origin != defaultApplicationOrigin {
		t.Fatalf("expected default origin, got %s", c.origin)
	}
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
}

type observation struct {
	endpoint string
	status   int
	duration time.Duration
	err      error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observation
}

func (o *recordingObserver) ObserveRequest(endpoint string, status int, duration time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observation{endpoint: endpoint, status: status, duration: duration, err: err})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
