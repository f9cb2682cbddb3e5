package domain

import "testing"

func TestIsLegalBid(t *testing.T) {
	open := Auction{{Seat: SeatNorth, Bid: SuitBid(1, StrainClubs)}}
	doubled := Auction{
		{Seat: SeatNorth, Bid: SuitBid(1, StrainClubs)},
		{Seat: SeatEast, Bid: Double()},
	}

	tests := []struct {
		name      string
		candidate Call
		auction   Auction
		want      bool
	}{
		{
			name:      "pass always legal on empty auction",
			candidate: Call{Seat: SeatNorth, Bid: Pass()},
			auction:   nil,
			want:      true,
		},
		{
			name:      "opening suit bid legal",
			candidate: Call{Seat: SeatNorth, Bid: SuitBid(1, StrainClubs)},
			auction:   nil,
			want:      true,
		},
		{
			name:      "higher strain same level legal",
			candidate: Call{Seat: SeatEast, Bid: SuitBid(1, StrainHearts)},
			auction:   open,
			want:      true,
		},
		{
			name:      "same bid not legal",
			candidate: Call{Seat: SeatEast, Bid: SuitBid(1, StrainClubs)},
			auction:   open,
			want:      false,
		},
		{
			name:      "lower strain same level not legal",
			candidate: Call{Seat: SeatEast, Bid: SuitBid(1, StrainClubs)},
			auction:   Auction{{Seat: SeatNorth, Bid: SuitBid(1, StrainDiamonds)}},
			want:      false,
		},
		{
			name:      "higher level lower strain legal",
			candidate: Call{Seat: SeatEast, Bid: SuitBid(2, StrainClubs)},
			auction:   Auction{{Seat: SeatNorth, Bid: SuitBid(1, StrainNoTrump)}},
			want:      true,
		},
		{
			name:      "double of opponent suit bid legal",
			candidate: Call{Seat: SeatEast, Bid: Double()},
			auction:   open,
			want:      true,
		},
		{
			name:      "double of partner suit bid not legal",
			candidate: Call{Seat: SeatSouth, Bid: Double()},
			auction:   open,
			want:      false,
		},
		{
			name:      "double on empty auction not legal",
			candidate: Call{Seat: SeatEast, Bid: Double()},
			auction:   nil,
			want:      false,
		},
		{
			name:      "redouble of opponent double legal",
			candidate: Call{Seat: SeatSouth, Bid: Redouble()},
			auction:   doubled,
			want:      true,
		},
		{
			name:      "redouble by doubling side not legal",
			candidate: Call{Seat: SeatWest, Bid: Redouble()},
			auction:   doubled,
			want:      false,
		},
		{
			name:      "redouble without double not legal",
			candidate: Call{Seat: SeatEast, Bid: Redouble()},
			auction:   open,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegalBid(tt.candidate, tt.auction); got != tt.want {
				t.Errorf("IsLegalBid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAuctionComplete(t *testing.T) {
	pass := func(s Seat) Call { return Call{Seat: s, Bid: Pass()} }

	tests := []struct {
		name    string
		auction Auction
		want    bool
	}{
		{"three passes only", Auction{pass(SeatNorth), pass(SeatEast), pass(SeatSouth)}, false},
		{"four passes", Auction{pass(SeatNorth), pass(SeatEast), pass(SeatSouth), pass(SeatWest)}, true},
		{
			"bid then three passes",
			Auction{
				{Seat: SeatNorth, Bid: SuitBid(1, StrainSpades)},
				pass(SeatEast), pass(SeatSouth), pass(SeatWest),
			},
			true,
		},
		{
			"bid interrupts trailing passes",
			Auction{
				pass(SeatNorth), pass(SeatEast), pass(SeatSouth),
				{Seat: SeatWest, Bid: SuitBid(1, StrainClubs)},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuctionComplete(tt.auction); got != tt.want {
				t.Errorf("IsAuctionComplete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveContractScenario(t *testing.T) {
	// 1C (N), pass (E), 1H (S), pass (W), pass (N), pass (E)
	auction := Auction{
		{Seat: SeatNorth, Bid: SuitBid(1, StrainClubs)},
		{Seat: SeatEast, Bid: Pass()},
		{Seat: SeatSouth, Bid: SuitBid(1, StrainHearts)},
		{Seat: SeatWest, Bid: Pass()},
		{Seat: SeatNorth, Bid: Pass()},
		{Seat: SeatEast, Bid: Pass()},
	}

	if !IsAuctionComplete(auction) {
		t.Fatalf("auction should be complete")
	}
	c := ResolveContract(auction)
	if c == nil {
		t.Fatalf("contract = nil, want settled contract")
	}
	if c.Level != 1 || c.Strain != StrainHearts || c.Declarer != SeatSouth {
		t.Fatalf("contract = %+v, want 1H by South", c)
	}
	if c.Doubled || c.Redoubled {
		t.Fatalf("contract unexpectedly doubled: %+v", c)
	}
}

func TestResolveContractPassOut(t *testing.T) {
	auction := Auction{
		{Seat: SeatNorth, Bid: Pass()},
		{Seat: SeatEast, Bid: Pass()},
		{Seat: SeatSouth, Bid: Pass()},
		{Seat: SeatWest, Bid: Pass()},
	}
	if !IsAuctionComplete(auction) {
		t.Fatalf("four passes should complete the auction")
	}
	if c := ResolveContract(auction); c != nil {
		t.Fatalf("contract = %+v, want nil on pass-out", c)
	}
}

func TestResolveContractDoubles(t *testing.T) {
	base := Auction{
		{Seat: SeatNorth, Bid: SuitBid(1, StrainSpades)},
		{Seat: SeatEast, Bid: Double()},
	}
	end := func(a Auction, seats ...Seat) Auction {
		for _, s := range seats {
			a = append(a, Call{Seat: s, Bid: Pass()})
		}
		return a
	}

	t.Run("double stands", func(t *testing.T) {
		a := end(append(Auction{}, base...), SeatSouth, SeatWest, SeatNorth)
		c := ResolveContract(a)
		if c == nil || !c.Doubled || c.Redoubled {
			t.Fatalf("contract = %+v, want doubled, not redoubled", c)
		}
	})

	t.Run("redouble stands", func(t *testing.T) {
		a := append(append(Auction{}, base...), Call{Seat: SeatSouth, Bid: Redouble()})
		a = end(a, SeatWest, SeatNorth, SeatEast)
		c := ResolveContract(a)
		if c == nil || !c.Doubled || !c.Redoubled {
			t.Fatalf("contract = %+v, want redoubled", c)
		}
	})

	t.Run("later suit bid clears double", func(t *testing.T) {
		a := append(append(Auction{}, base...), Call{Seat: SeatSouth, Bid: SuitBid(2, StrainSpades)})
		a = end(a, SeatWest, SeatNorth, SeatEast)
		c := ResolveContract(a)
		if c == nil || c.Doubled || c.Redoubled {
			t.Fatalf("contract = %+v, want undoubled 2S", c)
		}
		if c.Level != 2 || c.Strain != StrainSpades || c.Declarer != SeatSouth {
			t.Fatalf("contract = %+v, want 2S by South", c)
		}
	})
}
